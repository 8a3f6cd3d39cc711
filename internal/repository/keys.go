package repository

import (
	"fmt"
	"strings"
)

// Key layout shared by both services:
//
//	task:<taskId>          string, JSON task record
//	user:{<userId>}:tasks  set of task ids owned by the user
//	user:<userId>          string, JSON user record
func taskKey(taskID string) string {
	return "task:" + taskID
}

func userKey(userID string) string {
	return "user:" + userID
}

// IndexKey returns the key of the set holding a user's task ids.
func IndexKey(userID string) string {
	return fmt.Sprintf("user:{%s}:tasks", userID)
}

// validUserID reports whether id can address a user record. Braces are
// reserved for the index hash tag, so an id carrying them could name a
// task index instead of a user.
func validUserID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "{}")
}
