package dto

// LoginDTO - форма входа в обе консоли.
type LoginDTO struct {
	Username string `form:"username" validate:"required,notblank"`
	Password string `form:"password" validate:"required"`
}

type EditUsernameDTO struct {
	Username string `form:"username" validate:"required,notblank"`
}

type EditPasswordDTO struct {
	OldPassword string `form:"old_password" validate:"required"`
	NewPassword string `form:"new_password" validate:"required,min=4"`
}
