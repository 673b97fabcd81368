package catalog

// Closed reference lists shared by the domain validator and the public
// /api/auth/lists endpoint. They are the single source of truth for the
// two enumerated profile fields; membership checks are case-sensitive.

var departments = []string{
	"AMAZONAS", "ANTIOQUIA", "ARAUCA", "ATLANTICO", "BOLIVAR", "BOYACA", "CALDAS",
	"CAQUETA", "CAUCA", "CASANARE", "CESAR", "CHOCO", "CUNDINAMARCA", "CORDOBA",
	"GUAINIA", "GUAVIARE", "HUILA", "LA GUAJIRA", "MAGDALENA", "META", "NARIÑO",
	"NORTE DE SANTANDER", "PUTUMAYO", "QUINDIO", "RISARALDA", "SANTAFE DE BOGOTA DC",
	"SANTANDER", "SUCRE", "TOLIMA", "VALLE DEL CAUCA", "VAUPES", "VICHADA",
	"ARCHIPIELAGO DE SAN ANDRES PROVIDENCIA Y SANTA CATALINA", "OTRO",
}

var academicLevels = []string{
	"Bachiller", "Técnico", "Tecnólogo", "Pregrado", "Profesional", "Especialización",
	"Maestría", "Doctorado", "Postdoctorado", "Otro",
}

var (
	departmentSet    = toSet(departments)
	academicLevelSet = toSet(academicLevels)
)

func toSet(values []string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Departments returns a copy of the department list in declaration order.
func Departments() []string {
	out := make([]string, len(departments))
	copy(out, departments)
	return out
}

// AcademicLevels returns a copy of the academic level list in declaration order.
func AcademicLevels() []string {
	out := make([]string, len(academicLevels))
	copy(out, academicLevels)
	return out
}

// IsDepartment reports whether v is an exact member of the department list.
func IsDepartment(v string) bool {
	_, ok := departmentSet[v]
	return ok
}

// IsAcademicLevel reports whether v is an exact member of the academic level list.
func IsAcademicLevel(v string) bool {
	_, ok := academicLevelSet[v]
	return ok
}
