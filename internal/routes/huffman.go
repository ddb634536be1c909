package routes

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kelbwah/huffmin/internal/huffman"
	"github.com/labstack/echo/v4"
)

// spoolUpload copies an uploaded multipart file to a uniquely-named
// scratch file under os.TempDir so concurrent requests for files with the
// same client-supplied name never collide, unlike keying temp files by the
// client-supplied filename directly, which let two concurrent uploads of a
// same-named file clobber each other's temp file.
func spoolUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(os.TempDir(), uuid.NewString()+"_"+file.Filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func httpStatusFor(err error) (int, string) {
	var herr *huffman.Error
	if errors.As(err, &herr) {
		switch herr.Kind {
		case huffman.KindEmptyInput:
			return http.StatusBadRequest, "input file is empty"
		case huffman.KindMalformedHeader:
			return http.StatusUnprocessableEntity, "malformed compressed header"
		case huffman.KindTruncatedPayload:
			return http.StatusUnprocessableEntity, "truncated compressed payload"
		default:
			return http.StatusInternalServerError, "io error"
		}
	}
	return http.StatusInternalServerError, "internal error"
}

// CompressFile handles POST /compress: it spools the uploaded file to a
// temp path, streams it through huffman.Encode, and serves the result back
// for download with attachment headers.
func CompressFile(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file required")
	}

	inPath, err := spoolUpload(fh)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot spool uploaded file")
	}
	defer os.Remove(inPath)

	outPath := inPath + ".comp"
	defer os.Remove(outPath)

	if err := huffman.CompressFile(context.Background(), inPath, outPath); err != nil {
		status, msg := httpStatusFor(err)
		return echo.NewHTTPError(status, msg)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/octet-stream")
	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		"attachment; filename=\"compressed_"+fh.Filename+"\"",
	)
	return c.File(outPath)
}

// DecompressFile handles POST /decompress, the mirror of CompressFile.
func DecompressFile(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file required")
	}

	inPath, err := spoolUpload(fh)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot spool uploaded file")
	}
	defer os.Remove(inPath)

	outPath := inPath + ".decomp"
	defer os.Remove(outPath)

	if err := huffman.DecompressFile(context.Background(), inPath, outPath); err != nil {
		status, msg := httpStatusFor(err)
		return echo.NewHTTPError(status, msg)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/octet-stream")
	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		"attachment; filename=\"decompressed_"+strings.TrimSuffix(fh.Filename, ".comp")+"\"",
	)
	return c.File(outPath)
}
