package ocr

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"livesplit/internal/media"
	"livesplit/internal/services"
)

// Tesseract runs the tesseract CLI.
type Tesseract struct {
	Runner media.Runner
	Binary string
}

// NewTesseract returns a Tesseract engine for binary.
func NewTesseract(runner media.Runner, binary string) *Tesseract {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "tesseract"
	}
	if runner == nil {
		runner = media.CmdRunner{}
	}
	return &Tesseract{Runner: runner, Binary: binary}
}

// Recognize writes tesseract's output next to the image as
// "<image>_psm<N>.txt" and returns its contents.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string, psm int) (string, error) {
	outBase := OutputBase(imagePath, psm)
	args := make([]string, 0, 4)
	if psm != PSMDefault {
		args = append(args, "--psm", strconv.Itoa(psm))
	}
	args = append(args, imagePath, outBase)
	if _, err := media.Exec(ctx, t.Runner, "ocr", t.Binary, args); err != nil {
		return "", err
	}
	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ocr", "read output", fmt.Sprintf("tesseract output for %s", imagePath), err)
	}
	return string(data), nil
}

// OutputBase returns the output path stem tesseract is asked to write.
func OutputBase(imagePath string, psm int) string {
	if psm == PSMDefault {
		return imagePath
	}
	return imagePath + "_psm" + strconv.Itoa(psm)
}

var _ Engine = (*Tesseract)(nil)
