package logx

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/toolkits/pkg/logger"
)

// Config controls where and how verbosely the adapter logs.
type Config struct {
	Dir        string
	Level      string
	Output     string // stderr or file
	KeepHours  uint
	RotateNum  int
	RotateSize uint64
}

// Init wires the process-wide logger backend and returns a function that
// flushes and closes it on shutdown.
func Init(c Config) (func(), error) {
	logger.SetSeverity(c.Level)

	if c.Output == "stderr" {
		logger.LogToStderr()
	} else if c.Output == "file" {
		lb, err := logger.NewFileBackend(c.Dir)
		if err != nil {
			return nil, errors.WithMessage(err, "NewFileBackend failed")
		}

		if c.KeepHours != 0 {
			lb.SetRotateByHour(true)
			lb.SetKeepHours(c.KeepHours)
		} else if c.RotateNum != 0 {
			lb.Rotate(c.RotateNum, c.RotateSize*1024*1024)
		} else {
			return nil, errors.New("KeepHours and RotateNum both are 0")
		}

		logger.SetLogging(c.Level, lb)
	}

	return func() {
		fmt.Println("logger exiting")
		logger.Close()
	}, nil
}

// LogCall records one call that reached the wire: its correlation id,
// the decoded envelope name, and the request/response sizes. It is
// meant to back a thriftmux.Service's WithLogBuilder hook so every call
// lands in the same backend Init configured, rather than on stdout.
func LogCall(requestID, envelopeName string, requestLen, responseLen int) {
	logger.Infof("rpc call request_id=%s envelope=%s req_bytes=%d resp_bytes=%d", requestID, envelopeName, requestLen, responseLen)
}
