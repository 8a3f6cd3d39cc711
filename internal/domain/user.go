package domain

import "time"

// User is the owner of tasks.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// UserWithTasks is the composite view served by the user service.
type UserWithTasks struct {
	User  *User
	Tasks []Task
}
