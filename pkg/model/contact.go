package model

import "time"

// ContactStatus tracks a message through the recipient's inbox.
type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactArchived ContactStatus = "archived"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactRead, ContactReplied, ContactArchived:
		return true
	}
	return false
}

// Contact is a message left for a portfolio owner. The recipient owns it.
type Contact struct {
	ID               string        `gorm:"column:id;primaryKey" json:"id"`
	PortfolioOwnerID string        `gorm:"column:portfolio_owner_id;not null;index" json:"portfolioOwner"`
	Name             string        `gorm:"column:name;not null" json:"name"`
	Email            string        `gorm:"column:email;not null" json:"email"`
	Subject          string        `gorm:"column:subject;not null" json:"subject"`
	Message          string        `gorm:"column:message;not null" json:"message"`
	Phone            string        `gorm:"column:phone" json:"phone,omitempty"`
	Company          string        `gorm:"column:company" json:"company,omitempty"`
	Status           ContactStatus `gorm:"column:status;not null" json:"status"`
	Replied          bool          `gorm:"column:replied;not null" json:"replied"`
	ReplyMessage     string        `gorm:"column:reply_message" json:"replyMessage,omitempty"`
	ReplyDate        *time.Time    `gorm:"column:reply_date" json:"replyDate,omitempty"`
	CreatedAt        time.Time     `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Contact) TableName() string {
	return "contacts"
}

// OwnerRef returns the recipient id.
func (c *Contact) OwnerRef() string {
	return c.PortfolioOwnerID
}
