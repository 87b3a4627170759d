package entity

type UserType string

const (
	UserTypeEmployee UserType = "employee"
	UserTypeCompany  UserType = "company"
	UserTypeAdmin    UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeEmployee, UserTypeCompany, UserTypeAdmin:
		return true
	default:
		return false
	}
}

type AccountStatus int16

const (
	// AccountStatusUnknown is mean status is not known / not set.
	AccountStatusUnknown AccountStatus = 0

	// AccountStatusPending mean the email has not been verified yet.
	AccountStatusPending AccountStatus = 1

	// AccountStatusActive mean the account may sign in.
	AccountStatusActive AccountStatus = 2

	// AccountStatusDisabled mean the account was closed by an admin.
	AccountStatusDisabled AccountStatus = 3
)

func (s AccountStatus) String() string {
	switch s {
	case AccountStatusPending:
		return "Pending"
	case AccountStatusActive:
		return "Active"
	case AccountStatusDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}

type Account struct {
	ID        int64
	Email     string
	Password  string // hashed
	UserType  UserType
	Status    AccountStatus
	FirstName string
	LastName  string
}

type ProfileTab struct {
	Slug  string
	Label string
}

// EmployeeProfileTabs are the sections of an employee profile, in display order.
var EmployeeProfileTabs = []ProfileTab{
	{Slug: "dados-pessoais", Label: "Dados Pessoais"},
	{Slug: "certificacoes", Label: "Certificações"},
	{Slug: "ultimos-trabalhos", Label: "Últimos Trabalhos"},
	{Slug: "preferencias", Label: "Preferências"},
}
