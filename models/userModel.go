package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleSuperadmin = "superadmin"
	RolePatient    = "patient"
)

type HomeAddress struct {
	City         string `json:"city,omitempty" bson:"city,omitempty"`
	State        string `json:"state,omitempty" bson:"state,omitempty"`
	Country      string `json:"country,omitempty" bson:"country,omitempty"`
	Street       string `json:"street,omitempty" bson:"street,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty" bson:"neighborhood,omitempty"`
	Complement   string `json:"complement,omitempty" bson:"complement,omitempty"`
	Number       string `json:"number,omitempty" bson:"number,omitempty"`
}

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	FirstName      *string            `json:"first_name" bson:"first_name" validate:"required,min=2,max=100"`
	LastName       *string            `json:"last_name" bson:"last_name" validate:"required,min=2,max=100"`
	Email          *string            `json:"email" validate:"email,required"`
	Password       *string            `json:"password,omitempty" validate:"required,min=6"`
	Role           string             `json:"role" validate:"required,eq=superadmin|eq=patient"`
	Birth          *time.Time         `json:"birth,omitempty" bson:"birth,omitempty"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	EmergencyPhone string             `json:"emergency_phone,omitempty" bson:"emergency_phone,omitempty"`
	CPF            string             `json:"cpf,omitempty" bson:"cpf,omitempty"`
	HomeAddress    *HomeAddress       `json:"home_address,omitempty" bson:"home_address,omitempty"`
	Token          *string            `json:"token,omitempty"`
	RefreshToken   *string            `json:"refresh_token,omitempty" bson:"refresh_token,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}
