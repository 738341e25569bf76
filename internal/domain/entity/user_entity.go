package entity

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Role       string
	Password   string
	Company    Company
	MainGoal   string
	HeardFrom  string
	AgreeTerms bool
	CreatedAt  time.Time
}

// Company is the required organisation sub-record on every account.
type Company struct {
	Name     string
	Size     string
	Industry string
}

// CompanySizes is the fixed enumeration of employee-count bands.
var CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1000+"}

// MinPasswordLen is enforced on the plaintext before hashing.
const MinPasswordLen = 8

var emailRe = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// ValidationError names every field that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid user: %s", strings.Join(names, ", "))
}

// NewUserInput carries the raw registration fields before normalization.
type NewUserInput struct {
	FirstName  string
	LastName   string
	Email      string
	Role       string
	Password   string
	Company    Company
	MainGoal   string
	HeardFrom  string
	AgreeTerms bool
}

// NewUser validates and normalizes the input and returns an unpersisted User.
// The Password field still holds plaintext; callers hash it before storing.
// On failure it returns a *ValidationError naming the offending fields and
// nothing is constructed.
func NewUser(in NewUserInput) (*User, error) {
	fields := map[string]string{}

	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		fields["firstName"] = "is required"
	}
	lastName := strings.TrimSpace(in.LastName)
	if lastName == "" {
		fields["lastName"] = "is required"
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		fields["email"] = "is required"
	} else if !emailRe.MatchString(email) {
		fields["email"] = "must be a valid email"
	}

	if in.Password == "" {
		fields["password"] = "is required"
	} else if len(in.Password) < MinPasswordLen {
		fields["password"] = fmt.Sprintf("must be at least %d characters long", MinPasswordLen)
	}

	companyName := strings.TrimSpace(in.Company.Name)
	if companyName == "" {
		fields["company.name"] = "is required"
	}
	if in.Company.Size == "" {
		fields["company.size"] = "is required"
	} else if !ValidCompanySize(in.Company.Size) {
		fields["company.size"] = "must be one of: " + strings.Join(CompanySizes, ", ")
	}
	companyIndustry := strings.TrimSpace(in.Company.Industry)
	if companyIndustry == "" {
		fields["company.industry"] = "is required"
	}

	if !in.AgreeTerms {
		fields["agreeTerms"] = "must be accepted"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      strings.TrimSpace(in.Role),
		Password:  in.Password,
		Company: Company{
			Name:     companyName,
			Size:     in.Company.Size,
			Industry: companyIndustry,
		},
		MainGoal:   strings.TrimSpace(in.MainGoal),
		HeardFrom:  strings.TrimSpace(in.HeardFrom),
		AgreeTerms: in.AgreeTerms,
	}, nil
}

// ValidCompanySize reports whether size is one of the allowed bands.
func ValidCompanySize(size string) bool {
	for _, s := range CompanySizes {
		if s == size {
			return true
		}
	}
	return false
}

// NormalizeEmail applies the same canonical form used at registration so
// lookups are case-insensitive by construction.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
