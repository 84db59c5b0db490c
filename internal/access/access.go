package access

import (
	"errors"

	"github.com/Revasall/TO-DO-List-project/internal/models"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
)

var ErrAccessDenied = errors.New("you don't have permission to modify this task")

// VerifyTaskAccess gates every task read and mutation: existence first,
// then ownership. It never exposes a foreign task's contents.
func VerifyTaskAccess(task *models.Task, userID uint) (*models.Task, error) {
	if task == nil {
		return nil, repo.ErrTaskNotFound
	}
	if task.OwnerID != userID {
		return nil, ErrAccessDenied
	}
	return task, nil
}
