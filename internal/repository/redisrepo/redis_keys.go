package redisrepo

import "fmt"

const (
	USER_KEY       = "user:%s" // <userID>
	CATEGORIES_KEY = "categories"
)

func UserKey(userID string) string {
	return fmt.Sprintf(USER_KEY, userID)
}

func CategoriesKey() string {
	return CATEGORIES_KEY
}
