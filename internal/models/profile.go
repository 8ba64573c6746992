package models

type Education struct {
	ID        uint64 `gorm:"primarykey" json:"-"`
	UserID    uint64 `gorm:"not null" json:"-"`
	School    string `gorm:"not null" json:"school"`
	Degree    string `gorm:"not null" json:"degree"`
	Field     string `gorm:"not null" json:"field"`
	StartYear string `gorm:"not null" json:"start_year"`
	EndYear   string `gorm:"not null" json:"end_year"`
}

func (Education) TableName() string { return "user_education" }

type Experience struct {
	ID          uint64  `gorm:"primarykey" json:"-"`
	UserID      uint64  `gorm:"not null" json:"-"`
	Company     string  `gorm:"not null" json:"company"`
	Position    string  `gorm:"not null" json:"position"`
	Description string  `gorm:"not null" json:"description"`
	StartDate   string  `gorm:"not null" json:"start_date"`
	EndDate     *string `json:"end_date"`
}

func (Experience) TableName() string { return "user_experience" }

type Skill struct {
	ID     uint64 `gorm:"primarykey"`
	UserID uint64 `gorm:"not null"`
	Skill  string `gorm:"not null"`
}

func (Skill) TableName() string { return "user_skills" }

type Interest struct {
	ID       uint64 `gorm:"primarykey"`
	UserID   uint64 `gorm:"not null"`
	Interest string `gorm:"not null"`
}

func (Interest) TableName() string { return "user_interests" }

type Certification struct {
	ID            uint64 `gorm:"primarykey"`
	UserID        uint64 `gorm:"not null"`
	Certification string `gorm:"not null"`
}

func (Certification) TableName() string { return "user_certifications" }

// Link holds a user's external profile links; at most one row per user.
type Link struct {
	ID        uint64  `gorm:"primarykey" json:"-"`
	UserID    uint64  `gorm:"not null;uniqueIndex" json:"-"`
	GitHub    *string `gorm:"column:github" json:"github"`
	LinkedIn  *string `gorm:"column:linkedin" json:"linkedin"`
	Portfolio *string `json:"portfolio"`
}

func (Link) TableName() string { return "user_links" }
