// Command add_user creates a staff account from the command line, for
// bootstrapping the first admin before the app has any users.
package main

import (
	"flag"
	"log"

	"annur-center/app/config"
	"annur-center/app/database"
	"annur-center/app/models"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	role := flag.String("role", "admin", "role: admin, manager or clerk")
	flag.Parse()

	if *email == "" || *password == "" || *firstName == "" || *lastName == "" {
		log.Fatal("email, password, first-name and last-name are required")
	}

	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	user := &models.User{
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      *role,
	}
	if err := models.Validate(user); err != nil {
		log.Fatal("Invalid user: ", err)
	}

	if err := database.CreateUser(config.GetDB(), user, *password); err != nil {
		log.Fatal("Failed to create user: ", err)
	}

	log.Printf("Created user %s (%s) with role %s", user.Email, user.Matricule, user.Role)
}
