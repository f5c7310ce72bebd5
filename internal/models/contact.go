package models

import (
	"net/mail"
	"strings"
	"time"

	"crudbase/internal/entity"
)

type Contact struct {
	Id        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Contact) TableName() string {
	return "contacts"
}

func (c *Contact) ID() int64 {
	return c.Id
}

func (c *Contact) SetID(id int64) {
	c.Id = id
}

func (c *Contact) Fields() []entity.Field {
	return []entity.Field{
		{Name: "name", Value: c.Name},
		{Name: "email", Value: c.Email},
		{Name: "phone", Value: c.Phone},
		{Name: "age", Value: c.Age},
		{Name: "created_at", Value: c.CreatedAt},
	}
}

func (c *Contact) Pointers() []any {
	return []any{&c.Id, &c.Name, &c.Email, &c.Phone, &c.Age, &c.CreatedAt}
}

func (c *Contact) Prepare() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

func (c *Contact) Validate() []entity.Error {
	var errs []entity.Error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, entity.Error{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, entity.Error{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(c.Email); err != nil {
		errs = append(errs, entity.Error{Field: "email", Message: "email is not a valid address"})
	}
	if c.Age < 0 {
		errs = append(errs, entity.Error{Field: "age", Message: "age must not be negative"})
	}
	return errs
}
