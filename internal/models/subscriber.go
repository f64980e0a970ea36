package models

import "time"

// SubscriberPageSize is the fixed page size of the admin subscriber list.
const SubscriberPageSize = 10

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID               string    `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	SubscriptionDate time.Time `db:"subscription_date" json:"subscriptionDate"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// SubscriberFilter captures the admin list query. PageSize <= 0 means no limit.
type SubscriberFilter struct {
	Search   string
	Page     int
	PageSize int
}

// Offset returns the number of rows to skip for the current page.
func (f SubscriberFilter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
