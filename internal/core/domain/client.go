package domain

// Contact is the primary person to reach at a corporate client.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Client is a corporate entity onboarded and owned by exactly one RM.
// RMID is fixed at creation.
type Client struct {
	ID                 string  `json:"id"`
	CompanyName        string  `json:"company_name"`
	Industry           string  `json:"industry"`
	Address            string  `json:"address"`
	PrimaryContact     Contact `json:"primary_contact"`
	AnnualTurnover     float64 `json:"annual_turnover"`
	DocumentsSubmitted bool    `json:"documents_submitted"`
	RMID               string  `json:"rm_id"`
}
