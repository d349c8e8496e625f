package service

import "errors"

var (
	ErrUserNotFound     = errors.New("пользователь не найден")
	ErrActiveSession    = errors.New("у вас уже есть активная рабочая сессия")
	ErrNoActiveSession  = errors.New("у вас нет активной рабочей сессии")
	ErrClockOutBeforeIn = errors.New("время ухода должно быть позже времени прихода")
	ErrInvalidWindow    = errors.New("окно анализа должно быть от 1 до 365 дней")
	ErrEmptyName        = errors.New("имя не может быть пустым")
)
