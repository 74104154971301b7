package reader

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// readMHTML returns the visible text of a saved web archive. Files that
// are not MIME messages are parsed as plain HTML.
func readMHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	markup, err := archiveHTML(data)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(strings.ToValidUTF8(markup, "")))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	return nodesText([]*html.Node{doc}), nil
}

// archiveHTML finds the first text/html part of an archive
func archiveHTML(data []byte) (string, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return string(data), nil
	}

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil {
		return string(data), nil
	}

	if !strings.HasPrefix(mediaType, "multipart/") {
		if mediaType != "text/html" {
			return string(data), nil
		}
		body, err := decodeBody(msg.Body, msg.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	boundary := params["boundary"]
	if boundary == "" {
		return "", errors.New("multipart archive without boundary")
	}

	mr := multipart.NewReader(msg.Body, boundary)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return "", errors.New("archive has no text/html part")
		}
		if err != nil {
			return "", fmt.Errorf("read archive part: %w", err)
		}

		partType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil || partType != "text/html" {
			continue
		}

		// multipart.Reader already decodes quoted-printable parts
		body, err := decodeBody(part, part.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return "", err
		}
		return string(body), nil
	}
}

func decodeBody(r io.Reader, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s body: %w", encoding, err)
	}
	return body, nil
}
