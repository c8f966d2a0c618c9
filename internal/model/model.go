package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 迁移指定模型的表结构, key 为空时迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "User":
		return db.AutoMigrate(User{})

	case "Board":
		return db.AutoMigrate(Board{})

	case "Note":
		return db.AutoMigrate(Note{})

	case "NoteChange":
		return db.AutoMigrate(NoteChange{})

	case "ChangeComment":
		return db.AutoMigrate(ChangeComment{})

	case "Picture":
		return db.AutoMigrate(Picture{})

	case "":
		return db.AutoMigrate(
			User{},
			Board{},
			Note{},
			NoteChange{},
			ChangeComment{},
			Picture{},
		)
	}
	return nil
}
