package repositories

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("record already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// translateError maps GORM errors onto the repository sentinels and attaches
// the failing operation.
func translateError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(ErrNotFound, op)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(ErrConflict, op)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Wrap(ErrInvalidReference, op)
	default:
		return errors.Wrap(err, op)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern that matches query as a literal
// substring.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}
