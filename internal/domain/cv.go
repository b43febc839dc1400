package domain

import (
	"context"
	"time"
)

type CV struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Headline  string    `json:"headline"`
	Summary   *string   `json:"summary"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Education dates use the YYYY-MM-DD wire format.
type Education struct {
	ID               int64      `json:"id"`
	CVID             int64      `json:"cvId"`
	Institution      string     `json:"institution"`
	Degree           string     `json:"degree"`
	FieldOfStudy     *string    `json:"fieldOfStudy"`
	StartDate        *string    `json:"startDate"`
	EndDate          *string    `json:"endDate"`
	IsVerified       bool       `json:"isVerified"`
	VerificationDate *time.Time `json:"verificationDate"`
}

type Experience struct {
	ID               int64      `json:"id"`
	CVID             int64      `json:"cvId"`
	Company          string     `json:"company"`
	Role             string     `json:"role"`
	Description      *string    `json:"description"`
	StartDate        *string    `json:"startDate"`
	EndDate          *string    `json:"endDate"`
	IsCurrent        bool       `json:"isCurrent"`
	IsVerified       bool       `json:"isVerified"`
	VerificationDate *time.Time `json:"verificationDate"`
}

// CVDetails is a CV together with its child records.
type CVDetails struct {
	CV         *CV          `json:"cv"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
}

type CVInput struct {
	Headline string  `json:"headline" validate:"notblank,max=200"`
	Summary  *string `json:"summary" validate:"omitempty,max=2000"`
	// Defaults to true when omitted
	IsPublic *bool `json:"isPublic"`
}

type EducationInput struct {
	Institution  string  `json:"institution" validate:"notblank,max=200"`
	Degree       string  `json:"degree" validate:"notblank,max=100"`
	FieldOfStudy *string `json:"fieldOfStudy" validate:"omitempty,max=100"`
	StartDate    *string `json:"startDate" validate:"omitempty,date_ymd"`
	EndDate      *string `json:"endDate" validate:"omitempty,date_ymd"`
}

type ExperienceInput struct {
	Company     string  `json:"company" validate:"notblank,max=200"`
	Role        string  `json:"role" validate:"notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	StartDate   *string `json:"startDate" validate:"omitempty,date_ymd"`
	EndDate     *string `json:"endDate" validate:"omitempty,date_ymd"`
	IsCurrent   *bool   `json:"isCurrent"`
}

// CascadeDeleteResult counts the rows removed by deleting a CV.
type CascadeDeleteResult struct {
	Education  int64 `json:"education"`
	Experience int64 `json:"experience"`
	CV         int64 `json:"cv"`
}

func (r CascadeDeleteResult) Total() int64 {
	return r.Education + r.Experience + r.CV
}

// CVRepository lookups return (nil, nil) when the row does not exist.
type CVRepository interface {
	Create(ctx context.Context, cv *CV) error
	GetByID(ctx context.Context, id int64) (*CV, error)
	GetByUserID(ctx context.Context, userID int64) (*CV, error)
	ExistsByUserID(ctx context.Context, userID int64) (bool, error)
	Update(ctx context.Context, cv *CV) error
	// DeleteWithChildren removes the CV and all of its education and experience rows
	// in a single transaction.
	DeleteWithChildren(ctx context.Context, id int64) (CascadeDeleteResult, error)
}

type EducationRepository interface {
	Create(ctx context.Context, education *Education) error
	GetByID(ctx context.Context, id int64) (*Education, error)
	ListByCVID(ctx context.Context, cvID int64) ([]Education, error)
	Update(ctx context.Context, education *Education) error
	Delete(ctx context.Context, id int64) error
	SetVerified(ctx context.Context, id int64, verified bool, at *time.Time) error
}

type ExperienceRepository interface {
	Create(ctx context.Context, experience *Experience) error
	GetByID(ctx context.Context, id int64) (*Experience, error)
	ListByCVID(ctx context.Context, cvID int64) ([]Experience, error)
	Update(ctx context.Context, experience *Experience) error
	Delete(ctx context.Context, id int64) error
	SetVerified(ctx context.Context, id int64, verified bool, at *time.Time) error
}

// CVUsecase is the CV Manager. Every mutation takes the acting user's id explicitly and
// resolves ownership through the parent CV.
type CVUsecase interface {
	CreateCV(ctx context.Context, userID int64, input CVInput) (*CV, error)
	GetUserCV(ctx context.Context, userID int64) (*CV, error)
	GetCVByID(ctx context.Context, cvID int64) (*CV, error)
	GetMyCVDetails(ctx context.Context, userID int64) (*CVDetails, error)
	GetPublicCV(ctx context.Context, cvID int64) (*CVDetails, error)
	GetPublicCVByUserID(ctx context.Context, userID int64) (*CVDetails, error)
	UpdateCV(ctx context.Context, cvID, userID int64, input CVInput) (*CV, error)
	DeleteCV(ctx context.Context, cvID, userID int64) (CascadeDeleteResult, error)

	AddEducation(ctx context.Context, cvID, userID int64, input EducationInput) (*Education, error)
	UpdateEducation(ctx context.Context, educationID, userID int64, input EducationInput) (*Education, error)
	DeleteEducation(ctx context.Context, educationID, userID int64) error
	ListEducation(ctx context.Context, cvID int64) ([]Education, error)

	AddExperience(ctx context.Context, cvID, userID int64, input ExperienceInput) (*Experience, error)
	UpdateExperience(ctx context.Context, experienceID, userID int64, input ExperienceInput) (*Experience, error)
	DeleteExperience(ctx context.Context, experienceID, userID int64) error
	ListExperience(ctx context.Context, cvID int64) ([]Experience, error)
}
