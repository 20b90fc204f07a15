package database

import (
	"fmt"

	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type demoUser struct {
	Email    string
	Role     string
	Name     string
	Password string
}

var demoUsers = []demoUser{
	{Email: "clinic@klh.edu.in", Role: model.RoleClinic, Name: "Clinic Staff", Password: "clinic123"},
	{Email: "faculty@klh.edu.in", Role: model.RoleFaculty, Name: "Faculty", Password: "faculty123"},
	{Email: "student@klh.edu.in", Role: model.RoleStudent, Name: "Student", Password: "student123"},
	{Email: "hod@klh.edu.in", Role: model.RoleHOD, Name: "HOD", Password: "hod123"},
}

// SeedDemoUsers inserts one demo account per role, skipping any that exist.
func SeedDemoUsers(users repository.UserRepository) {
	for _, d := range demoUsers {
		if _, err := users.GetByEmail(d.Email); err == nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Println("seed: failed to hash password for", d.Email)
			continue
		}
		user := model.User{Email: d.Email, PasswordHash: string(hash), Role: d.Role, Name: d.Name}
		if err := users.Create(&user); err != nil {
			fmt.Println("seed: failed to create", d.Email, "-", err)
			continue
		}
		fmt.Println("seed: created user", d.Email)
	}
}

// SeedSections creates the CSE demo sections with their roll ranges.
func SeedSections(sections repository.SectionRepository) {
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("CSE-A%d", i+1)
		if _, err := sections.GetByName(name); err == nil {
			continue
		}
		rolls := make([]string, 0, 5)
		for j := 1; j <= 5; j++ {
			rolls = append(rolls, fmt.Sprintf("241003%04d", i*100+j))
		}
		section := model.Section{Name: name, Rolls: rolls}
		if err := sections.Create(&section); err != nil {
			fmt.Println("seed: failed to create section", name, "-", err)
			continue
		}
		fmt.Println("seed: created section", name)
	}
}
