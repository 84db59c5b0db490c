package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revasall/TO-DO-List-project/internal/models"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
)

func TestVerifyTaskAccess(t *testing.T) {
	t.Parallel()

	task := &models.Task{ID: 1, Title: "buy milk", OwnerID: 7}

	tests := []struct {
		name    string
		task    *models.Task
		userID  uint
		wantErr error
	}{
		{name: "owner passes", task: task, userID: 7},
		{name: "missing task", task: nil, userID: 7, wantErr: repo.ErrTaskNotFound},
		{name: "foreign task", task: task, userID: 8, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := VerifyTaskAccess(tt.task, tt.userID)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.task, got)
		})
	}
}
