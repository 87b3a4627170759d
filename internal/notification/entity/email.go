package entity

import "time"

// VerificationEmail is the content of a code email before rendering.
type VerificationEmail struct {
	Purpose   string
	Email     string
	Name      string
	Code      string
	ExpiresAt time.Time
}

// Subject returns the subject line for the purpose the code was issued for.
func (v VerificationEmail) Subject() string {
	switch v.Purpose {
	case "manager_email":
		return "Confirme o novo email do responsável"
	default:
		return "Confirme o seu registo na TalentFlow"
	}
}

// Intro is the first paragraph of the email body.
func (v VerificationEmail) Intro() string {
	switch v.Purpose {
	case "manager_email":
		return "Recebemos um pedido para alterar o email do responsável da empresa."
	default:
		return "Obrigado por se registar na TalentFlow."
	}
}
