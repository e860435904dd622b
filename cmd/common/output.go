// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"

	"bank-report/internal/fileutils"
	"bank-report/internal/logging"
	"bank-report/internal/models"
)

// WriteOutput writes data to outputFile, or to w when outputFile is empty.
func WriteOutput(w io.Writer, outputFile string, data []byte, log logging.Logger) error {
	if outputFile == "" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := fileutils.WriteFile(outputFile, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	log.Info("Report written", logging.Field{Key: logging.FieldOutputFile, Value: outputFile})
	return nil
}
