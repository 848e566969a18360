package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iljicevs/eduportal/core/user"
)

func TestRollbarLoggerAnnotate(t *testing.T) {
	var buf bytes.Buffer
	l := RollbarLogger{std: log.New(&buf, "", 0)}

	usr := user.User{ID: "u1", Username: "anna", Email: "anna@test.cd"}
	args := l.annotate("boom", []interface{}{usr, map[string]interface{}{"k": "v"}, usr})

	// the user becomes the reported person, not a payload value
	assert.Equal(t, "boom", args[0])
	assert.Len(t, args, 2)
	assert.Equal(t, map[string]interface{}{"k": "v"}, args[1])
}

func TestRollbarLoggerEcho(t *testing.T) {
	var buf bytes.Buffer
	l := RollbarLogger{std: log.New(&buf, "", 0)}

	l.echo("something failed", []interface{}{"detail"})
	assert.Contains(t, buf.String(), "something failed")
	assert.Contains(t, buf.String(), "detail")
}
