package core

// StudentRecord is the registry entry of a student. The lending desk only reads it.
type StudentRecord struct {
	EnrollmentNo EnrollmentNoString
	FirstName    string
	LastName     string
	Semester     string // numeric in most records, but free text is accepted
}
