package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table this repository layer owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&roleModel{},
		&userRoleModel{},
		&authTokenModel{},
		&productModel{},
		&employeeModel{},
		&departmentModel{},
	)
}
