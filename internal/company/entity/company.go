package entity

import "time"

// ManagerEmailCodeLength is the length of the code sent to a new manager email.
const ManagerEmailCodeLength = 5

type Manager struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

// Profile is the company account as shown on its profile page. It is cached
// as JSON, hence the tags.
type Profile struct {
	CompanyID int64     `json:"company_id"`
	Name      string    `json:"name"`
	NIF       string    `json:"nif"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Website   string    `json:"website"`
	Manager   Manager   `json:"manager"`
	UpdatedAt time.Time `json:"updated_at"`
}
