package constants

const (
	RoleOwner      = "owner" // platform operator, cross-school
	RoleAdmin      = "admin" // head teacher / school administrator
	RoleTeacher    = "teacher"
	RoleAccountant = "accountant"
)

var (
	AdminAndAbove   = []string{RoleOwner, RoleAdmin}
	StaffRoles      = []string{RoleOwner, RoleAdmin, RoleTeacher, RoleAccountant}
	FinanceRoles    = []string{RoleOwner, RoleAdmin, RoleAccountant}
	AssessmentRoles = []string{RoleOwner, RoleAdmin, RoleTeacher}
)

// CBC proficiency bands, ordered. Each band owns a fixed two-unit score range.
const (
	BandEmerging    = "emerging"    // 1-2
	BandApproaching = "approaching" // 3-4
	BandProficient  = "proficient"  // 5-6
	BandExceeding   = "exceeding"   // 7-8
)

var ProficiencyBands = []string{BandEmerging, BandApproaching, BandProficient, BandExceeding}

// ProficiencyRange returns the inclusive sub-score range of a band,
// ok=false for an unknown band.
func ProficiencyRange(band string) (min, max int, ok bool) {
	switch band {
	case BandEmerging:
		return 1, 2, true
	case BandApproaching:
		return 3, 4, true
	case BandProficient:
		return 5, 6, true
	case BandExceeding:
		return 7, 8, true
	}
	return 0, 0, false
}
