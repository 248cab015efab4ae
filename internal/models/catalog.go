package models

// Option pairs a display label with the value submitted to the backend.
type Option struct {
	Label string
	Value string
}

// YearOptions are the accepted year levels.
var YearOptions = []Option{
	{"1st Year", "1st"},
	{"2nd Year", "2nd"},
	{"3rd Year", "3rd"},
	{"4th Year", "4th"},
}

// DepartmentOptions are the accepted departments.
var DepartmentOptions = []Option{
	{"CEIT", "CEIT"},
	{"CTE", "CTE"},
	{"COT", "COT"},
	{"CAS", "CAS"},
}

// CourseOptions maps a department to its accepted courses.
var CourseOptions = map[string][]Option{
	"CEIT": {
		{"Bachelor of Science in Electronics (BSECE)", "BSECE"},
		{"Bachelor of Science in Electrical (BSEE)", "BSEE"},
		{"Bachelor of Science in Computer (BSCoE)", "BSCoE"},
		{"Bachelor of Science in Information Systems (BSIS)", "BSIS"},
		{"Bachelor of Science in Information Tech (BSInfoTech)", "BSInfoTech"},
		{"Bachelor of Science in Computer Science (BSCS)", "BSCS"},
	},
	"CTE": {
		{"BSED - English", "BSED-ENGLISH"},
		{"BSED - Filipino", "BSED-FILIPINO"},
		{"BSED - Mathematics", "BSED-MATH"},
		{"BSED - Sciences", "BSED-SCIENCES"},
		{"BEED", "BEED"},
		{"BPED", "BPED"},
		{"BTVTED", "BTVTED"},
	},
	"COT": {
		{"Bachelor in Electrical (BEET)", "BEET"},
		{"Bachelor in Electronics (BEXET)", "BEXET"},
		{"Bachelor in Mechanical (BMET)", "BMET"},
		{"Mechanical Technology (BMET-MT)", "BMET-MT"},
		{"Refrigeration & Aircon (BMET-RAC)", "BMET-RAC"},
		{"Architectural Drafting (BSIT-ADT)", "BSIT-ADT"},
		{"Automotive Technology (BSIT-AT)", "BSIT-AT"},
		{"Electrical Technology (BSIT-ELT)", "BSIT-ELT"},
		{"Electronics Technology (BSIT-ET)", "BSIT-ET"},
		{"Mechanical Technology (BSIT-MT)", "BSIT-MT"},
		{"Welding & Fabrication (BSIT-WAF)", "BSIT-WAF"},
		{"Heating, Ventilation, AC (BSIT-HVACR)", "BSIT-HVACR"},
	},
	"CAS": {
		{"Bachelor of Science in Environmental Science (BSES)", "BSES"},
		{"Bachelor of Science in Mathematics (BSMATH)", "BSMATH"},
		{"Bachelor of Arts in English Language (BA-EL)", "BA-EL"},
	},
}

// ValidYear reports whether the value is an accepted year level.
func ValidYear(v string) bool {
	return contains(YearOptions, v)
}

// ValidDepartment reports whether the value is an accepted department.
func ValidDepartment(v string) bool {
	return contains(DepartmentOptions, v)
}

// ValidCourse reports whether the course belongs to the department.
func ValidCourse(department, course string) bool {
	return contains(CourseOptions[department], course)
}

func contains(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}
