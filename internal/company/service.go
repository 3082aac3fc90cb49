package company

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"kyc-backend/internal/extract"
	"kyc-backend/internal/files"
	"kyc-backend/internal/llm"
	"kyc-backend/internal/shared/storage/object"
	"kyc-backend/internal/shared/telemetry"
)

// Service runs the document intake pipeline: parse -> upload -> extract ->
// summarize -> merge -> persist.
type Service struct {
	Store      object.ObjectStore
	Files      files.Repo
	Repo       Repo
	Summarizer llm.Summarizer
}

// Upload is one file taken from the multipart submission.
type Upload struct {
	FileName string
	Data     []byte
}

// uploadResult is what the pipeline knows about a slot after its file has
// been stored: the new FileRecord reference and the extracted text (empty
// when the file type is unsupported).
type uploadResult struct {
	fileID files.FileID
	text   string
}

// Submit processes one multipart submission for userID, creating the user's
// record or merging into the existing one. The returned bool is true when a
// new record was created.
//
// Any failure aborts the whole request; the single repo upsert at the end is
// the only persisted write to the record, but blobs and FileRecords stored
// before the failure are deliberately not rolled back.
func (s *Service) Submit(ctx context.Context, userID string, option string, uploads map[Slot]Upload) (PopulatedRecord, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return PopulatedRecord{}, false, ErrUserRequired
	}

	existing, err := s.Repo.GetByUser(ctx, userID)
	creating := false
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return PopulatedRecord{}, false, err
		}
		creating = true
		existing = Record{UserID: userID, Slots: map[Slot]SlotValue{}}
	}

	intake, err := s.processUploads(ctx, userID, uploads)
	if err != nil {
		return PopulatedRecord{}, false, err
	}

	slots := make(map[Slot]SlotValue, len(AllSlots))

	// The constitution slot runs first and sequentially: it carries the
	// option choice and its own validation.
	constSV, err := s.resolveConstitution(ctx, option, intake[SlotConstitution], existingSlot(existing, SlotConstitution))
	if err != nil {
		return PopulatedRecord{}, false, err
	}
	if constSV != nil {
		slots[SlotConstitution] = *constSV
	}

	// The six text slots are independent; fan out and await them all.
	results := make([]*SlotValue, len(TextDescriptors))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range TextDescriptors {
		i, d := i, d
		g.Go(func() error {
			sv, err := s.resolveTextSlot(gctx, d, intake[d.Slot], existingSlot(existing, d.Slot))
			if err != nil {
				return err
			}
			results[i] = sv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PopulatedRecord{}, false, err
	}
	for i, d := range TextDescriptors {
		if results[i] != nil {
			slots[d.Slot] = *results[i]
		}
	}

	rec := Record{
		ID:     existing.ID,
		UserID: userID,
		Slots:  slots,
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	persisted, err := s.Repo.Upsert(ctx, rec)
	if err != nil {
		return PopulatedRecord{}, false, err
	}

	telemetry.Info("company.submit.persisted", map[string]any{
		"user_id": userID,
		"created": creating,
		"slots":   len(persisted.Slots),
	})

	populated, err := s.populate(ctx, persisted)
	if err != nil {
		return PopulatedRecord{}, false, err
	}
	return populated, creating, nil
}

// Get returns the populated record owned by userID.
func (s *Service) Get(ctx context.Context, userID string) (PopulatedRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return PopulatedRecord{}, ErrUserRequired
	}
	rec, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		return PopulatedRecord{}, err
	}
	return s.populate(ctx, rec)
}

// processUploads stores every submitted file, creates its FileRecord and
// extracts its text. Unsupported file types keep their FileRecord but yield
// no text, which downstream treats as "no usable file".
func (s *Service) processUploads(ctx context.Context, userID string, uploads map[Slot]Upload) (map[Slot]uploadResult, error) {
	out := make(map[Slot]uploadResult, len(uploads))
	for _, slot := range AllSlots {
		up, ok := uploads[slot]
		if !ok {
			continue
		}

		obj, err := s.Store.Save(ctx, userID, up.FileName, bytes.NewReader(up.Data))
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", slot, err)
		}

		rec := files.FileRecord{
			ID:         files.FileID(uuid.NewString()),
			FileName:   up.FileName,
			FileURL:    obj.URL,
			FileType:   string(slot),
			UploadDate: time.Now().UTC(),
		}
		if err := s.Files.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("create file record %s: %w", slot, err)
		}

		text, err := extract.Text(ctx, up.Data, up.FileName)
		if err != nil {
			if errors.Is(err, extract.ErrUnsupportedType) {
				telemetry.Warn("company.extract.unsupported", map[string]any{
					"slot":      string(slot),
					"file_name": up.FileName,
				})
				text = ""
			} else {
				return nil, fmt.Errorf("extract %s: %w", slot, err)
			}
		}

		out[slot] = uploadResult{fileID: rec.ID, text: text}
	}
	return out, nil
}

// resolveTextSlot applies the merge policy and, when a fresh value is needed,
// asks the summarizer for the slot's semantic field.
func (s *Service) resolveTextSlot(ctx context.Context, d Descriptor, in uploadResult, existing *SlotValue) (*SlotValue, error) {
	uploaded := in.fileID != "" && in.text != ""
	if in.fileID != "" && in.text == "" {
		// A stored file we cannot read. The slot falls back to whatever the
		// record already holds.
		telemetry.Warn("company.slot.no_text", map[string]any{"slot": string(d.Slot)})
	}

	switch decideSlot(uploaded, in.fileID, existing) {
	case decidePreserve:
		out := *existing
		return &out, nil
	case decideCompute:
		value, err := s.summarizeField(ctx, d, in.text)
		if err != nil {
			return nil, err
		}
		if value == "" {
			telemetry.Warn("company.slot.empty_value", map[string]any{
				"slot":  string(d.Slot),
				"field": d.Field,
			})
			if existing != nil {
				out := *existing
				return &out, nil
			}
			return nil, nil
		}
		return &SlotValue{Value: value, Text: in.text, FileID: in.fileID}, nil
	default:
		return nil, nil
	}
}

// resolveConstitution handles the slot that carries the option choice.
// A newly uploaded constitution file requires an explicit option; an option
// alone updates the stored choice and preserves the prior file, description
// and text.
func (s *Service) resolveConstitution(ctx context.Context, option string, in uploadResult, existing *SlotValue) (*SlotValue, error) {
	hasFile := in.fileID != ""

	if strings.TrimSpace(option) == "" {
		if hasFile {
			return nil, ErrOptionRequired
		}
		telemetry.Warn("company.constitution.option_missing", nil)
		if existing != nil {
			out := *existing
			return &out, nil
		}
		return nil, nil
	}

	opt, err := parseOption(option)
	if err != nil {
		return nil, err
	}

	if !hasFile || in.text == "" {
		if hasFile {
			telemetry.Warn("company.slot.no_text", map[string]any{"slot": string(SlotConstitution)})
		}
		if existing != nil {
			out := *existing
			out.Option = opt
			return &out, nil
		}
		telemetry.Warn("company.constitution.document_missing", nil)
		return nil, nil
	}

	if existing != nil && existing.FileID.Same(in.fileID) {
		out := *existing
		out.Option = opt
		return &out, nil
	}

	desc, err := s.summarizeField(ctx, ConstitutionDescriptor, in.text)
	if err != nil {
		return nil, err
	}
	return &SlotValue{
		Value:  desc,
		Option: opt,
		Text:   in.text,
		FileID: in.fileID,
	}, nil
}

func (s *Service) summarizeField(ctx context.Context, d Descriptor, text string) (string, error) {
	resp, err := s.Summarizer.Summarize(ctx, text, fieldPrompt(d))
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", d.Slot, err)
	}
	return llm.ExtractField(resp, d.Field), nil
}

func (s *Service) populate(ctx context.Context, rec Record) (PopulatedRecord, error) {
	ids := make([]files.FileID, 0, len(rec.Slots))
	for _, sv := range rec.Slots {
		if sv.FileID != "" {
			ids = append(ids, sv.FileID)
		}
	}
	fileRecs, err := s.Files.GetByIDs(ctx, ids)
	if err != nil {
		return PopulatedRecord{}, err
	}
	return PopulatedRecord{Record: rec, Files: fileRecs}, nil
}

func existingSlot(rec Record, slot Slot) *SlotValue {
	if sv, ok := rec.Slots[slot]; ok {
		out := sv
		return &out
	}
	return nil
}

func parseOption(raw string) (ConstitutionOption, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidOption
	}
	opt := ConstitutionOption(n)
	if !ValidOption(opt) {
		return 0, ErrInvalidOption
	}
	return opt, nil
}
