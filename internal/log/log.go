// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// TFINV_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("TFINV_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{})
	log.SetLevelFromString(level)
}

// Verbose drops the level to DEBUG, regardless of TFINV_LOG. Wired to the
// --verbose flag.
func Verbose() {
	log.SetLevelFromString("DEBUG")
}

// CustomHandler formats log messages and writes to stderr so that inventory
// text emitted on stdout stays machine-consumable.
type CustomHandler struct{}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	message := e.Message
	fmt.Fprintf(os.Stderr, "%s %.1s %s\n", timestamp, level, message)
	return nil
}
