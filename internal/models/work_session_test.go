package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkSessionCalculatedFields(t *testing.T) {
	in := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	ws := &WorkSession{UserID: 1, Date: in, ClockInTime: in, Status: StatusActive}

	ws.UpdateCalculatedFields()
	assert.Equal(t, 0, ws.WorkedMinutes)
	assert.True(t, ws.IsActive())
	assert.Equal(t, "еще на работе", ws.Duration())

	out := in.Add(8*time.Hour + 15*time.Minute)
	ws.ClockOutTime = &out
	ws.UpdateCalculatedFields()
	assert.Equal(t, 495, ws.WorkedMinutes)
	assert.Equal(t, StatusCompleted, ws.Status)
	assert.False(t, ws.IsActive())
	assert.Equal(t, "8ч 15м", ws.Duration())
}

func TestWorkSessionInterval(t *testing.T) {
	in := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	ws := &WorkSession{ClockInTime: in}

	iv := ws.Interval()
	assert.Equal(t, in, iv.Start)
	assert.Nil(t, iv.End)
	assert.False(t, iv.Closed())

	out := in.Add(time.Hour)
	ws.ClockOutTime = &out
	iv = ws.Interval()
	require.NotNil(t, iv.End)
	assert.Equal(t, out, *iv.End)
	assert.True(t, iv.Closed())

	// интервал не должен ссылаться на поле модели
	later := out.Add(time.Hour)
	ws.ClockOutTime = &later
	assert.Equal(t, out, *iv.End)
}

func TestWorkSessionIsValid(t *testing.T) {
	in := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	before := in.Add(-time.Minute)

	tests := []struct {
		name    string
		session WorkSession
		valid   bool
	}{
		{name: "active", session: WorkSession{UserID: 1, Date: in, ClockInTime: in, Status: StatusActive}, valid: true},
		{name: "no user", session: WorkSession{Date: in, ClockInTime: in, Status: StatusActive}, valid: false},
		{name: "inverted", session: WorkSession{UserID: 1, Date: in, ClockInTime: in, ClockOutTime: &before, Status: StatusCompleted}, valid: false},
		{name: "unknown status", session: WorkSession{UserID: 1, Date: in, ClockInTime: in, Status: "absent"}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.session.IsValid())
		})
	}
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Иван Петров", (&User{FirstName: "Иван", LastName: "Петров"}).DisplayName())
	assert.Equal(t, "Иван", (&User{FirstName: "Иван"}).DisplayName())
	assert.Equal(t, "@ivan", (&User{Username: "ivan"}).DisplayName())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleMember}).IsAdmin())
}
