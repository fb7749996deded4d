// Package dump reads the MediaWiki XML export format
// (<mediawiki><page><revision>...) into the ordered authgraph.Revision
// sequence the core engine consumes. It is a supplemented feature (§12):
// the core treats the revision sequence as an external collaborator's
// output, so this is real but replaceable ambient infrastructure,
// grounded on dump_parser.rs's tag schema and adapted from the teacher's
// parser/registry.go one-format-per-dispatch-entry convention.
package dump

import (
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/wikiwho/authgraph"
)

// ErrEmptyDump is returned when the input contains no <page> element.
var ErrEmptyDump = errors.New("dump: no page found")

// ErrOutOfOrderRevisions is returned when a page's revisions are not
// strictly increasing by ID in document order. The core engine assumes
// chronological input and has no way to detect a reordered dump itself.
var ErrOutOfOrderRevisions = errors.New("dump: revisions are not strictly increasing by id")

type mediawikiContributor struct {
	Username string `xml:"username"`
	ID       int64  `xml:"id"`
}

type mediawikiText struct {
	Deleted string `xml:"deleted,attr"`
	Value   string `xml:",chardata"`
}

type mediawikiRevision struct {
	ID          int32                `xml:"id"`
	Timestamp   string               `xml:"timestamp"`
	Contributor mediawikiContributor `xml:"contributor"`
	Comment     string               `xml:"comment"`
	Minor       *struct{}            `xml:"minor"`
	Text        mediawikiText        `xml:"text"`
	SHA1        string               `xml:"sha1"`
}

type mediawikiPage struct {
	Title     string              `xml:"title"`
	Revisions []mediawikiRevision `xml:"revision"`
}

// ReadPage streams the first <page> element out of a MediaWiki XML
// export and returns its title plus its revisions converted to the
// core's Revision type, in document order (MediaWiki dumps are already
// chronological).
func ReadPage(r io.Reader, logger *slog.Logger) (title string, revisions []authgraph.Revision, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	dec := xml.NewDecoder(r)
	for {
		tok, terr := dec.Token()
		if terr == io.EOF {
			break
		}
		if terr != nil {
			return "", nil, terr
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "page" {
			continue
		}

		var page mediawikiPage
		if err := dec.DecodeElement(&page, &se); err != nil {
			return "", nil, err
		}

		revisions = make([]authgraph.Revision, 0, len(page.Revisions))
		for i, rv := range page.Revisions {
			if i > 0 && rv.ID <= page.Revisions[i-1].ID {
				return "", nil, ErrOutOfOrderRevisions
			}
			revisions = append(revisions, convertRevision(rv, logger))
		}
		return page.Title, revisions, nil
	}

	return "", nil, ErrEmptyDump
}

func convertRevision(rv mediawikiRevision, logger *slog.Logger) authgraph.Revision {
	ts, err := time.Parse(time.RFC3339, rv.Timestamp)
	if err != nil {
		logger.Debug("dump: unparsable revision timestamp", "revision_id", rv.ID, "timestamp", rv.Timestamp)
	}

	deleted := rv.Text.Deleted == "deleted"

	return authgraph.Revision{
		ID:        rv.ID,
		Timestamp: ts,
		Contributor: authgraph.Contributor{
			ID:   rv.Contributor.ID,
			Name: rv.Contributor.Username,
		},
		Comment: rv.Comment,
		Minor:   rv.Minor != nil,
		Text: authgraph.TextVariant{
			Deleted: deleted,
			Text:    rv.Text.Value,
		},
		SHA1: rv.SHA1,
	}
}

// ParseRevisionID is a small convenience for CLI callers that accept a
// revision ID on the command line.
func ParseRevisionID(s string) (authgraph.RevisionID, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return authgraph.RevisionID(v), nil
}
