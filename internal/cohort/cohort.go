// Package cohort routes applicants to the age bracket whose trained
// artifact pair serves them.
package cohort

// Cohort is the age-based dataset partition. One (model, scaler) pair
// is trained per cohort.
type Cohort string

const (
	Young Cohort = "young"
	Rest  Cohort = "rest"
)

// threshold is a frozen business rule: the boundary age belongs to the
// young cohort.
const threshold = 25

// Select returns the cohort that serves the given age.
func Select(age int) Cohort {
	if age <= threshold {
		return Young
	}
	return Rest
}

// All lists every cohort, in artifact-load order.
func All() []Cohort {
	return []Cohort{Young, Rest}
}
