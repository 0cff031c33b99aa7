package services

// CanAccessPatient decides whether a caller may act on a patient's resources.
// Elevated roles may act on any patient; everyone else only on themselves.
func CanAccessPatient(role, callerID, patientID string, elevatedRoles ...string) bool {
	for _, elevated := range elevatedRoles {
		if role == elevated {
			return true
		}
	}
	return callerID != "" && callerID == patientID
}
