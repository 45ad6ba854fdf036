package handler

import (
	"lansignal/internal/app/directory"
	"lansignal/internal/configs"
)

type AppDeps struct {
	Directory *directory.Directory
	Config    *configs.AppConfig
}
