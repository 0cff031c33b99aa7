package services

import (
	"testing"

	"golang-physiobackend/models"
)

func TestCanAccessPatient(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		callerID  string
		patientID string
		want      bool
	}{
		{"superadmin reaches any patient", models.RoleSuperadmin, "64f000000000000000000001", "64f000000000000000000002", true},
		{"patient reaches own resources", models.RolePatient, "64f000000000000000000001", "64f000000000000000000001", true},
		{"patient blocked from another patient", models.RolePatient, "64f000000000000000000001", "64f000000000000000000002", false},
		{"missing caller id blocked even on match", models.RolePatient, "", "", false},
		{"unknown role blocked from others", "receptionist", "64f000000000000000000001", "64f000000000000000000002", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccessPatient(tt.role, tt.callerID, tt.patientID, models.RoleSuperadmin)
			if got != tt.want {
				t.Errorf("CanAccessPatient(%q, %q, %q) = %v, want %v", tt.role, tt.callerID, tt.patientID, got, tt.want)
			}
		})
	}
}
