package spaceapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

type UserFilter struct {
	Search string `json:"search"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type CreateUser struct {
	Email            string     `json:"email"`
	Password         string     `json:"password"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	PhoneNumber      string     `json:"phone_number"`
	IsAdmin          bool       `json:"is_admin"`
	IsHRManager      bool       `json:"is_hr_manager"`
	JobTitle         string     `json:"job_title"`
	HeadID           *string    `json:"head_id"`
	OnProbation      bool       `json:"on_probation"`
	ProbationEndDate *time.Time `json:"probation_end_date"`
}

func (r CreateUser) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("не указана почта")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("не указаны имя и фамилия")
	}
	if r.OnProbation && r.ProbationEndDate == nil {
		return errors.New("не указана дата окончания испытательного срока")
	}
	return nil
}

type UpdateUser struct {
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	PhoneNumber      string     `json:"phone_number"`
	IsAdmin          bool       `json:"is_admin"`
	IsHRManager      bool       `json:"is_hr_manager"`
	JobTitle         string     `json:"job_title"`
	HeadID           *string    `json:"head_id"`
	ProbationEndDate *time.Time `json:"probation_end_date"`
}

type CreateSpace struct {
	Name string `json:"name"`
}

func (r CreateSpace) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("не указано название организации")
	}
	return nil
}

type SpaceView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
