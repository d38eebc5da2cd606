// Package models defines the domain types for GestorPlan.
package models

// Area is a department tag. The set is fixed at twelve values and never
// grows at runtime.
type Area string

const (
	AreaCopys              Area = "COPYS"
	AreaDirectores         Area = "DIRECTORES"
	AreaAudiovisual        Area = "AUDIOVISUAL"
	AreaGraficos           Area = "GRAFICOS"
	AreaDigitalWeb         Area = "DIGITAL WEB"
	AreaCuentas            Area = "CUENTAS"
	AreaComercial          Area = "COMERCIAL"
	AreaGerencia           Area = "GERENCIA"
	AreaTalentoHumano      Area = "TALENTO HUMANO"
	AreaAdministrativa     Area = "ADMINISTRATIVA"
	AreaPR                 Area = "PR"
	AreaServiciosGenerales Area = "SERVICIOS GENERALES"
)

// Areas returns every known Area in declaration order.
func Areas() []Area {
	return []Area{
		AreaCopys, AreaDirectores, AreaAudiovisual, AreaGraficos,
		AreaDigitalWeb, AreaCuentas, AreaComercial, AreaGerencia,
		AreaTalentoHumano, AreaAdministrativa, AreaPR, AreaServiciosGenerales,
	}
}

// Known reports whether a is one of the defined Area values.
func (a Area) Known() bool {
	for _, v := range Areas() {
		if a == v {
			return true
		}
	}
	return false
}

// RequestType is the kind of leave/permission being requested.
type RequestType string

const (
	TypeReposicion      RequestType = "REPOSICIÓN"
	TypeDiaFamilia      RequestType = "DIA DE LA FAMILIA"
	TypeCompensatorio   RequestType = "COMPENSATORIO"
	TypeDiaNoRemunerado RequestType = "DIA NO REMUNERADO"
	TypeVacaciones      RequestType = "VACACIONES"
)

// RequestTypes returns every known RequestType in declaration order.
func RequestTypes() []RequestType {
	return []RequestType{
		TypeReposicion, TypeDiaFamilia, TypeCompensatorio,
		TypeDiaNoRemunerado, TypeVacaciones,
	}
}

// Known reports whether t is one of the defined RequestType values.
func (t RequestType) Known() bool {
	for _, v := range RequestTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Request is a single leave/permission request. StartDate and EndDate are
// date-only ISO strings (YYYY-MM-DD) at every boundary; equal dates denote a
// single-day request. The ID is assigned by the record store on creation and
// never reassigned.
type Request struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Area      Area        `json:"area"`
	Type      RequestType `json:"type"`
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
}

// Equal reports identity equality: two requests are the same record iff they
// share an id.
func (r Request) Equal(other Request) bool {
	return r.ID == other.ID
}
