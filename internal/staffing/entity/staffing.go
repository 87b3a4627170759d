package entity

// Admin is a staffing administrator with their current load.
type Admin struct {
	ID             int64
	Name           string
	Email          string
	WorkforceCount *int
	RequestCount   *int
}

// Count is the load shown next to the admin: workforce when known, else the
// number of requests, else zero.
func (a Admin) Count() int {
	if a.WorkforceCount != nil {
		return *a.WorkforceCount
	}
	if a.RequestCount != nil {
		return *a.RequestCount
	}
	return 0
}

// Request is a company staffing request as seen by super admins.
type Request struct {
	ID        int64
	CompanyID int64
	TeamName  string
	AdminID   int64
}
