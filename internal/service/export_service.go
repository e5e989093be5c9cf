package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"clamood/console/internal/ids"
	"clamood/console/internal/models"
	"clamood/console/internal/resources"
)

const (
	ExportContentType = "text/csv; charset=utf-8"
	maxExportPages    = 200
)

var exportHeader = []string{
	"id", "name", "phone", "email", "gender", "membership_status",
	"registration_date", "expiry_date", "branch",
}

// Uploader stores an export and returns a link to it.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

type Export struct {
	Name        string
	ContentType string
	Rows        int
	URL         string
	Data        []byte
}

// ExportService writes the member roster as CSV. With an Uploader the file is
// stored and linked, otherwise the caller receives the bytes.
type ExportService struct {
	members  *resources.MembersAPI
	uploader Uploader
	now      func() time.Time
	log      zerolog.Logger
}

func NewExportService(members *resources.MembersAPI, uploader Uploader, log zerolog.Logger) *ExportService {
	return &ExportService{
		members:  members,
		uploader: uploader,
		now:      time.Now,
		log:      log,
	}
}

func (s *ExportService) Members(ctx context.Context, f models.MemberFilter) (Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return Export{}, fmt.Errorf("write header: %w", err)
	}

	rows := 0
	f.Page = 1
	for {
		page, err := s.members.List(ctx, f)
		if err != nil {
			return Export{}, err
		}
		for _, m := range page.Results {
			if err := w.Write(memberRecord(m)); err != nil {
				return Export{}, fmt.Errorf("write member %d: %w", m.ID, err)
			}
			rows++
		}
		if page.Next == nil || *page.Next == "" {
			break
		}
		if f.Page >= maxExportPages {
			return Export{}, fmt.Errorf("member export exceeds %d pages", maxExportPages)
		}
		f.Page++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Export{}, fmt.Errorf("flush csv: %w", err)
	}

	out := Export{
		Name:        fmt.Sprintf("members-%s-%s.csv", s.now().Format("20060102"), ids.New()),
		ContentType: ExportContentType,
		Rows:        rows,
	}

	if s.uploader == nil {
		out.Data = buf.Bytes()
		return out, nil
	}

	link, err := s.uploader.Upload(ctx, out.Name, bytes.NewReader(buf.Bytes()), int64(buf.Len()), ExportContentType)
	if err != nil {
		return Export{}, fmt.Errorf("upload export: %w", err)
	}
	out.URL = link
	s.log.Info().Str("object", out.Name).Int("rows", rows).Msg("member export uploaded")
	return out, nil
}

func memberRecord(m models.Member) []string {
	branch := m.BranchName
	if branch == "" && m.Branch.ID > 0 {
		branch = strconv.FormatInt(m.Branch.ID, 10)
	}
	return []string{
		strconv.FormatInt(m.ID, 10),
		m.Name,
		m.Phone,
		m.Email,
		string(m.Gender),
		string(m.MembershipStatus),
		m.RegistrationDate,
		deref(m.ExpiryDate),
		branch,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
