package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// --- Users ---

type setUserStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// --- Clients ---

type contactRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type clientRequest struct {
	CompanyName        string         `json:"company_name"        validate:"required"`
	Industry           string         `json:"industry"            validate:"required"`
	Address            string         `json:"address"             validate:"required"`
	PrimaryContact     contactRequest `json:"primary_contact"     validate:"required"`
	AnnualTurnover     float64        `json:"annual_turnover"     validate:"required,gt=0"`
	DocumentsSubmitted bool           `json:"documents_submitted"`
}

type contactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type clientResponse struct {
	ID                 string          `json:"id"`
	CompanyName        string          `json:"company_name"`
	Industry           string          `json:"industry"`
	Address            string          `json:"address"`
	PrimaryContact     contactResponse `json:"primary_contact"`
	AnnualTurnover     float64         `json:"annual_turnover"`
	DocumentsSubmitted bool            `json:"documents_submitted"`
	RMID               string          `json:"rm_id"`
}

// --- Credit requests ---

type createCreditRequest struct {
	ClientID      string  `json:"client_id"      validate:"required"`
	RequestAmount float64 `json:"request_amount" validate:"required,gt=0"`
	TenureMonths  int     `json:"tenure_months"  validate:"required,gt=0"`
	Purpose       string  `json:"purpose"        validate:"required"`
}

// setCreditStatusRequest carries a reviewer decision. Omitting remarks keeps
// the remarks already on the request.
type setCreditStatusRequest struct {
	Status  string  `json:"status"  validate:"required,oneof=Pending Approved Rejected"`
	Remarks *string `json:"remarks"`
}

type creditRequestResponse struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	SubmittedBy   string    `json:"submitted_by"`
	RequestAmount float64   `json:"request_amount"`
	TenureMonths  int       `json:"tenure_months"`
	Purpose       string    `json:"purpose"`
	Status        string    `json:"status"`
	Remarks       string    `json:"remarks"`
	CreatedAt     time.Time `json:"created_at"`
}

type statusChangeResponse struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	Remarks    string    `json:"remarks"`
	ReviewerID string    `json:"reviewer_id"`
	ChangedAt  time.Time `json:"changed_at"`
}
