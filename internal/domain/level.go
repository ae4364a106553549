package domain

import (
	"strconv"
	"strings"

	"github.com/IamHazels/employee-tool/internal/apperror"
)

// Level is the severity of a disciplinary record. It is stored and shown but does not
// influence expiry.
type Level int

const (
	LevelCounselling Level = iota + 1
	LevelVerbal
	LevelWritten
	LevelFinal
	LevelDismissal
)

var levelNames = map[Level]string{
	LevelCounselling: "counselling",
	LevelVerbal:      "verbal",
	LevelWritten:     "written",
	LevelFinal:       "final",
	LevelDismissal:   "dismissal",
}

func Levels() []Level {
	return []Level{LevelCounselling, LevelVerbal, LevelWritten, LevelFinal, LevelDismissal}
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// ParseLevel accepts a level name in any case, its ordinal ("1".."5"),
// or the legacy spelling "councelling".
func ParseLevel(raw string) (Level, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "councelling" {
		return LevelCounselling, nil
	}

	for level, name := range levelNames {
		if value == name {
			return level, nil
		}
	}

	if n, err := strconv.Atoi(value); err == nil && Level(n).Valid() {
		return Level(n), nil
	}

	return 0, apperror.InvalidInput("unrecognized disciplinary level " + strconv.Quote(raw))
}
