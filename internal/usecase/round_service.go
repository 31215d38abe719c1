package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/birdieboard/birdieboard/internal/domain/course"
	"github.com/birdieboard/birdieboard/internal/domain/feed"
	"github.com/birdieboard/birdieboard/internal/domain/profile"
	"github.com/birdieboard/birdieboard/internal/domain/round"
	"github.com/birdieboard/birdieboard/internal/domain/score"
	"github.com/birdieboard/birdieboard/internal/domain/snapshot"
	"github.com/birdieboard/birdieboard/internal/platform/id"
	"github.com/birdieboard/birdieboard/internal/platform/logging"
)

// FeedBackfillEnqueuer schedules a redo of feed generation and fan-out for
// a finished round whose inline publication failed.
type FeedBackfillEnqueuer interface {
	EnqueueFeedBackfill(ctx context.Context, roundID string) error
}

// RoundService drives the round lifecycle: draft, roster, the atomic start
// claim with snapshot materialization, scoring, finish, and draft deletion.
type RoundService struct {
	roundRepo    round.Repository
	courseRepo   course.Repository
	snapshotRepo snapshot.Repository
	scoreRepo    score.Repository
	profileRepo  profile.Repository
	feedGen      *FeedGeneratorService
	fanout       *FanoutService
	backfill     FeedBackfillEnqueuer
	idGen        id.Generator
	now          func() time.Time
	logger       *logging.Logger
}

func NewRoundService(
	roundRepo round.Repository,
	courseRepo course.Repository,
	snapshotRepo snapshot.Repository,
	scoreRepo score.Repository,
	profileRepo profile.Repository,
	feedGen *FeedGeneratorService,
	fanout *FanoutService,
	backfill FeedBackfillEnqueuer,
	idGen id.Generator,
	logger *logging.Logger,
) *RoundService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RoundService{
		roundRepo:    roundRepo,
		courseRepo:   courseRepo,
		snapshotRepo: snapshotRepo,
		scoreRepo:    scoreRepo,
		profileRepo:  profileRepo,
		feedGen:      feedGen,
		fanout:       fanout,
		backfill:     backfill,
		idGen:        idGen,
		now:          time.Now,
		logger:       logger,
	}
}

type CreateRoundInput struct {
	CourseID     string
	TeeBoxID     string
	ScheduledFor *time.Time
	DisplayName  string
}

func (s *RoundService) CreateRound(ctx context.Context, ownerProfileID string, in CreateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.CreateRound")
	defer span.End()

	ownerProfileID = strings.TrimSpace(ownerProfileID)
	if ownerProfileID == "" {
		return round.Round{}, fmt.Errorf("%w: owner profile id is required", ErrUnauthorized)
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		owner, exists, err := s.profileRepo.GetByID(ctx, ownerProfileID)
		if err != nil {
			return round.Round{}, fmt.Errorf("get owner profile: %w", err)
		}
		if !exists {
			return round.Round{}, fmt.Errorf("%w: profile=%s", ErrNotFound, ownerProfileID)
		}
		displayName = owner.DisplayName
	}

	courseID := strings.TrimSpace(in.CourseID)
	teeBoxID := strings.TrimSpace(in.TeeBoxID)
	if courseID != "" {
		if err := s.validateSelection(ctx, courseID, teeBoxID); err != nil {
			return round.Round{}, err
		}
	} else if teeBoxID != "" {
		return round.Round{}, fmt.Errorf("%w: tee box requires a course", ErrInvalidInput)
	}

	roundID, err := s.idGen.NewID()
	if err != nil {
		return round.Round{}, fmt.Errorf("generate round id: %w", err)
	}
	participantID, err := s.idGen.NewID()
	if err != nil {
		return round.Round{}, fmt.Errorf("generate participant id: %w", err)
	}

	now := s.now().UTC()
	status := round.StatusDraft
	if in.ScheduledFor != nil {
		status = round.StatusScheduled
	}
	r := round.Round{
		ID:              roundID,
		OwnerProfileID:  ownerProfileID,
		Status:          status,
		CourseID:        courseID,
		PendingTeeBoxID: teeBoxID,
		ScheduledFor:    in.ScheduledFor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.roundRepo.Insert(ctx, r); err != nil {
		return round.Round{}, fmt.Errorf("insert round: %w", err)
	}

	ownerSeat := round.Participant{
		ID:          participantID,
		RoundID:     roundID,
		ProfileID:   &ownerProfileID,
		DisplayName: displayName,
		Role:        round.RoleOwner,
		CreatedAt:   now,
	}
	if err := s.roundRepo.InsertParticipant(ctx, ownerSeat); err != nil {
		return round.Round{}, fmt.Errorf("insert owner participant: %w", err)
	}

	return r, nil
}

// RoundDetail is a round with its roster.
type RoundDetail struct {
	Round        round.Round
	Participants []round.Participant
}

func (s *RoundService) GetRound(ctx context.Context, callerProfileID, roundID string) (RoundDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.GetRound")
	defer span.End()

	r, participants, err := s.loadRound(ctx, roundID)
	if err != nil {
		return RoundDetail{}, err
	}

	if r.OwnerProfileID != callerProfileID && !rosterContains(participants, callerProfileID) {
		return RoundDetail{}, fmt.Errorf("%w: not a participant of round %s", ErrForbidden, roundID)
	}

	return RoundDetail{Round: r, Participants: participants}, nil
}

func (s *RoundService) ListRounds(ctx context.Context, ownerProfileID string, limit int) ([]round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.ListRounds")
	defer span.End()

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rounds, err := s.roundRepo.ListByOwner(ctx, ownerProfileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list rounds by owner: %w", err)
	}
	return rounds, nil
}

// SetCourseSelection changes the course and tee of an editable round. Once
// a round has started the frozen snapshots are authoritative and the
// selection is locked, so a live round fails closed here.
func (s *RoundService) SetCourseSelection(ctx context.Context, callerProfileID, roundID, courseID, teeBoxID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.SetCourseSelection")
	defer span.End()

	r, err := s.loadOwnedRound(ctx, callerProfileID, roundID)
	if err != nil {
		return err
	}
	if !r.Status.Editable() {
		return fmt.Errorf("%w: round %s already started", ErrInvalidInput, roundID)
	}

	courseID = strings.TrimSpace(courseID)
	teeBoxID = strings.TrimSpace(teeBoxID)
	if courseID == "" || teeBoxID == "" {
		return fmt.Errorf("%w: course id and tee box id are required", ErrInvalidInput)
	}
	if err := s.validateSelection(ctx, courseID, teeBoxID); err != nil {
		return err
	}

	updated, err := s.roundRepo.UpdateSelection(ctx, roundID, courseID, teeBoxID)
	if err != nil {
		return fmt.Errorf("update round selection: %w", err)
	}
	if !updated {
		// Lost the window between the status read and the write.
		return fmt.Errorf("%w: round %s already started", ErrInvalidInput, roundID)
	}
	return nil
}

type AddParticipantInput struct {
	ProfileID   string
	DisplayName string
	Role        round.ParticipantRole
}

func (s *RoundService) AddParticipant(ctx context.Context, callerProfileID, roundID string, in AddParticipantInput) (round.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.AddParticipant")
	defer span.End()

	r, err := s.loadOwnedRound(ctx, callerProfileID, roundID)
	if err != nil {
		return round.Participant{}, err
	}
	if !r.Status.Editable() {
		return round.Participant{}, fmt.Errorf("%w: round %s already started", ErrInvalidInput, roundID)
	}

	role := in.Role
	if role == "" {
		role = round.RolePlayer
	}
	if !role.Valid() {
		return round.Participant{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	if role == round.RoleOwner {
		return round.Participant{}, fmt.Errorf("%w: round already has an owner", ErrInvalidInput)
	}

	profileID := strings.TrimSpace(in.ProfileID)
	displayName := strings.TrimSpace(in.DisplayName)

	var profileRef *string
	if profileID != "" {
		existing, exists, err := s.roundRepo.GetParticipantByProfile(ctx, roundID, profileID)
		if err != nil {
			return round.Participant{}, fmt.Errorf("get participant by profile: %w", err)
		}
		if exists {
			return existing, nil
		}

		p, exists, err := s.profileRepo.GetByID(ctx, profileID)
		if err != nil {
			return round.Participant{}, fmt.Errorf("get profile: %w", err)
		}
		if !exists {
			return round.Participant{}, fmt.Errorf("%w: profile=%s", ErrNotFound, profileID)
		}
		if displayName == "" {
			displayName = p.DisplayName
		}
		profileRef = &profileID
	}
	if displayName == "" {
		return round.Participant{}, fmt.Errorf("%w: display name is required for guests", ErrInvalidInput)
	}

	participantID, err := s.idGen.NewID()
	if err != nil {
		return round.Participant{}, fmt.Errorf("generate participant id: %w", err)
	}
	participant := round.Participant{
		ID:          participantID,
		RoundID:     roundID,
		ProfileID:   profileRef,
		DisplayName: displayName,
		Role:        role,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.roundRepo.InsertParticipant(ctx, participant); err != nil {
		return round.Participant{}, fmt.Errorf("insert participant: %w", err)
	}
	return participant, nil
}

func (s *RoundService) RemoveParticipant(ctx context.Context, callerProfileID, roundID, participantID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.RemoveParticipant")
	defer span.End()

	r, err := s.loadOwnedRound(ctx, callerProfileID, roundID)
	if err != nil {
		return err
	}

	target, exists, err := s.roundRepo.GetParticipant(ctx, participantID)
	if err != nil {
		return fmt.Errorf("get participant: %w", err)
	}
	if !exists || target.RoundID != roundID {
		return fmt.Errorf("%w: participant=%s", ErrNotFound, participantID)
	}

	if !r.Status.Editable() {
		return fmt.Errorf("%w: participants are locked once the round starts", ErrInvalidInput)
	}
	if target.Role == round.RoleOwner {
		return fmt.Errorf("%w: the owner cannot be removed", ErrInvalidInput)
	}
	if !target.IsGuest() && *target.ProfileID == callerProfileID {
		return fmt.Errorf("%w: cannot remove yourself", ErrInvalidInput)
	}

	if err := s.scoreRepo.DeleteByParticipant(ctx, roundID, participantID); err != nil {
		return fmt.Errorf("delete participant scores: %w", err)
	}
	if err := s.roundRepo.DeleteParticipant(ctx, participantID); err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}

type StartResult struct {
	RoundID       string
	TeeSnapshotID string
}

// Start claims the round and materializes the frozen snapshot set. Exactly
// one concurrent caller wins the claim; losers return idempotent success
// with whatever tee snapshot the winner produced. A crash mid-claim leaves
// the round in the starting state, and the next Start resumes the
// materialization instead of duplicating it.
func (s *RoundService) Start(ctx context.Context, callerProfileID, roundID string) (StartResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Start")
	defer span.End()

	r, err := s.loadOwnedRound(ctx, callerProfileID, roundID)
	if err != nil {
		return StartResult{}, err
	}
	if r.Status == round.StatusFinished {
		return StartResult{}, fmt.Errorf("%w: round %s is finished", ErrInvalidInput, roundID)
	}
	if r.CourseID == "" || r.PendingTeeBoxID == "" {
		return StartResult{}, fmt.Errorf("%w: select a course and tee before starting", ErrInvalidInput)
	}

	claimed, err := s.roundRepo.ClaimStart(ctx, roundID, s.now().UTC())
	if err != nil {
		return StartResult{}, fmt.Errorf("claim round start: %w", err)
	}
	if !claimed {
		current, exists, err := s.roundRepo.GetByID(ctx, roundID)
		if err != nil {
			return StartResult{}, fmt.Errorf("get round after lost claim: %w", err)
		}
		if !exists {
			return StartResult{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
		}
		if current.Status == round.StatusLive {
			teeSnapshotID, err := s.lookupTeeSnapshot(ctx, current)
			if err != nil {
				return StartResult{}, err
			}
			return StartResult{RoundID: roundID, TeeSnapshotID: teeSnapshotID}, nil
		}
		// Still starting: resume the winner's interrupted materialization.
		r = current
	}

	teeSnapshotID, err := s.materializeSnapshots(ctx, r)
	if err != nil {
		// Round stays in starting; the next Start resumes from here.
		return StartResult{}, fmt.Errorf("materialize snapshots: %w", err)
	}
	if err := s.roundRepo.MarkLive(ctx, roundID); err != nil {
		return StartResult{}, fmt.Errorf("mark round live: %w", err)
	}

	s.logger.InfoContext(ctx, "round started", "round_id", roundID, "tee_snapshot_id", teeSnapshotID)
	return StartResult{RoundID: roundID, TeeSnapshotID: teeSnapshotID}, nil
}

type RecordScoreInput struct {
	ParticipantID string
	HoleNumber    int
	Strokes       int
}

func (s *RoundService) RecordScore(ctx context.Context, callerProfileID, roundID string, in RecordScoreInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.RecordScore")
	defer span.End()

	r, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	if err := s.requireScorer(ctx, r, callerProfileID); err != nil {
		return err
	}
	if r.Status != round.StatusLive {
		return fmt.Errorf("%w: round %s is not live", ErrInvalidInput, roundID)
	}
	if in.HoleNumber < 1 || in.Strokes < 1 {
		return fmt.Errorf("%w: hole number and strokes must be positive", ErrInvalidInput)
	}

	target, exists, err := s.roundRepo.GetParticipant(ctx, in.ParticipantID)
	if err != nil {
		return fmt.Errorf("get participant: %w", err)
	}
	if !exists || target.RoundID != roundID {
		return fmt.Errorf("%w: participant=%s", ErrNotFound, in.ParticipantID)
	}

	eventID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate score event id: %w", err)
	}
	event := score.Event{
		ID:            eventID,
		RoundID:       roundID,
		ParticipantID: in.ParticipantID,
		HoleNumber:    in.HoleNumber,
		Strokes:       in.Strokes,
		RecordedBy:    callerProfileID,
		RecordedAt:    s.now().UTC(),
	}
	if err := s.scoreRepo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("insert score event: %w", err)
	}
	return nil
}

// Finish flips a live round to finished, then publishes its feed items.
// Publication is best-effort: the finish never rolls back, and failures
// are handed to the backfill queue.
func (s *RoundService) Finish(ctx context.Context, callerProfileID, roundID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Finish")
	defer span.End()

	r, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	if err := s.requireScorer(ctx, r, callerProfileID); err != nil {
		return err
	}
	if r.Status == round.StatusFinished {
		return nil
	}
	if r.Status != round.StatusLive && r.Status != round.StatusStarting {
		return fmt.Errorf("%w: round %s is not live", ErrInvalidInput, roundID)
	}

	finished, err := s.roundRepo.ClaimFinish(ctx, roundID, s.now().UTC())
	if err != nil {
		return fmt.Errorf("claim round finish: %w", err)
	}
	if !finished {
		current, exists, err := s.roundRepo.GetByID(ctx, roundID)
		if err != nil {
			return fmt.Errorf("get round after lost finish: %w", err)
		}
		if exists && current.Status == round.StatusFinished {
			return nil
		}
		return fmt.Errorf("%w: round %s is not live", ErrInvalidInput, roundID)
	}

	if err := s.publishRoundFeed(ctx, roundID); err != nil {
		s.logger.ErrorContext(ctx, "feed publication failed, scheduling backfill",
			"round_id", roundID, "error", err)
		if enqueueErr := s.backfill.EnqueueFeedBackfill(ctx, roundID); enqueueErr != nil {
			s.logger.ErrorContext(ctx, "enqueue feed backfill",
				"round_id", roundID, "error", enqueueErr)
		}
	}
	return nil
}

// RunFeedBackfill re-runs generation and fan-out for a finished round. The
// job queue retries on error, and every step is idempotent, so replays are
// safe.
func (s *RoundService) RunFeedBackfill(ctx context.Context, roundID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.RunFeedBackfill")
	defer span.End()

	r, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	if r.Status != round.StatusFinished {
		return fmt.Errorf("%w: round %s is not finished", ErrInvalidInput, roundID)
	}
	return s.publishRoundFeed(ctx, roundID)
}

func (s *RoundService) DeleteDraft(ctx context.Context, callerProfileID, roundID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.DeleteDraft")
	defer span.End()

	r, err := s.loadOwnedRound(ctx, callerProfileID, roundID)
	if err != nil {
		return err
	}
	if r.Status != round.StatusDraft {
		return fmt.Errorf("%w: only draft rounds can be deleted", ErrInvalidInput)
	}

	// Children before parents so a partial failure never strands rows
	// pointing at a deleted round.
	if err := s.scoreRepo.DeleteByRound(ctx, roundID); err != nil {
		return fmt.Errorf("delete round scores: %w", err)
	}
	if err := s.snapshotRepo.DeleteByRound(ctx, roundID); err != nil {
		return fmt.Errorf("delete round snapshots: %w", err)
	}
	if err := s.roundRepo.DeleteParticipantsByRound(ctx, roundID); err != nil {
		return fmt.Errorf("delete round participants: %w", err)
	}
	if err := s.roundRepo.Delete(ctx, roundID); err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	return nil
}

func (s *RoundService) publishRoundFeed(ctx context.Context, roundID string) error {
	generated, err := s.feedGen.GenerateForRound(ctx, roundID)
	if err != nil {
		return fmt.Errorf("generate feed items: %w", err)
	}
	for _, g := range generated {
		if err := s.fanout.Deliver(ctx, g.Item, feed.SubjectProfileIDs(g.Subjects)); err != nil {
			return fmt.Errorf("fan out item %d: %w", g.Item.ID, err)
		}
	}
	return nil
}

func (s *RoundService) materializeSnapshots(ctx context.Context, r round.Round) (string, error) {
	c, exists, err := s.courseRepo.GetByID(ctx, r.CourseID)
	if err != nil {
		return "", fmt.Errorf("get course: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: course=%s", ErrNotFound, r.CourseID)
	}
	teeBox, exists, err := s.courseRepo.GetTeeBox(ctx, r.PendingTeeBoxID)
	if err != nil {
		return "", fmt.Errorf("get tee box: %w", err)
	}
	if !exists || teeBox.CourseID != r.CourseID {
		return "", fmt.Errorf("%w: tee box=%s", ErrNotFound, r.PendingTeeBoxID)
	}
	holes, err := s.courseRepo.ListHolesByTeeBox(ctx, teeBox.ID)
	if err != nil {
		return "", fmt.Errorf("list holes: %w", err)
	}

	now := s.now().UTC()

	courseSnapshotID, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate course snapshot id: %w", err)
	}
	courseSnap, err := s.snapshotRepo.EnsureCourseSnapshot(ctx, snapshot.CourseSnapshot{
		ID:        courseSnapshotID,
		RoundID:   r.ID,
		CourseID:  c.ID,
		Name:      c.Name,
		City:      c.City,
		Country:   c.Country,
		HoleCount: c.HoleCount,
		CreatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("ensure course snapshot: %w", err)
	}

	teeSnapshotID, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate tee snapshot id: %w", err)
	}
	teeSnap, err := s.snapshotRepo.EnsureTeeSnapshot(ctx, snapshot.TeeSnapshot{
		ID:               teeSnapshotID,
		CourseSnapshotID: courseSnap.ID,
		TeeBoxID:         teeBox.ID,
		Name:             teeBox.Name,
		Par:              teeBox.Par,
		Yards:            teeBox.Yards,
		Rating:           teeBox.Rating,
		Slope:            teeBox.Slope,
		CreatedAt:        now,
	})
	if err != nil {
		return "", fmt.Errorf("ensure tee snapshot: %w", err)
	}

	holeSnaps := make([]snapshot.HoleSnapshot, 0, len(holes))
	for _, h := range holes {
		holeSnapshotID, err := s.idGen.NewID()
		if err != nil {
			return "", fmt.Errorf("generate hole snapshot id: %w", err)
		}
		holeSnaps = append(holeSnaps, snapshot.HoleSnapshot{
			ID:            holeSnapshotID,
			TeeSnapshotID: teeSnap.ID,
			HoleID:        h.ID,
			Number:        h.Number,
			Par:           h.Par,
			Yards:         h.Yards,
			StrokeIndex:   h.StrokeIndex,
			CreatedAt:     now,
		})
	}
	if err := s.snapshotRepo.EnsureHoleSnapshots(ctx, teeSnap.ID, holeSnaps); err != nil {
		return "", fmt.Errorf("ensure hole snapshots: %w", err)
	}

	participants, err := s.roundRepo.ListParticipants(ctx, r.ID)
	if err != nil {
		return "", fmt.Errorf("list participants: %w", err)
	}
	for _, p := range participants {
		if err := s.roundRepo.AssignTeeSnapshot(ctx, p.ID, teeSnap.ID); err != nil {
			return "", fmt.Errorf("assign tee snapshot to participant %s: %w", p.ID, err)
		}
	}

	return teeSnap.ID, nil
}

func (s *RoundService) lookupTeeSnapshot(ctx context.Context, r round.Round) (string, error) {
	courseSnap, exists, err := s.snapshotRepo.GetCourseSnapshotByRound(ctx, r.ID)
	if err != nil {
		return "", fmt.Errorf("get course snapshot: %w", err)
	}
	if !exists {
		return "", nil
	}
	teeSnap, exists, err := s.snapshotRepo.GetTeeSnapshotByNaturalKey(ctx, courseSnap.ID, r.PendingTeeBoxID)
	if err != nil {
		return "", fmt.Errorf("get tee snapshot: %w", err)
	}
	if !exists {
		return "", nil
	}
	return teeSnap.ID, nil
}

func (s *RoundService) validateSelection(ctx context.Context, courseID, teeBoxID string) error {
	_, exists, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("get course: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: course=%s", ErrNotFound, courseID)
	}
	if teeBoxID == "" {
		return fmt.Errorf("%w: tee box id is required", ErrInvalidInput)
	}
	teeBox, exists, err := s.courseRepo.GetTeeBox(ctx, teeBoxID)
	if err != nil {
		return fmt.Errorf("get tee box: %w", err)
	}
	if !exists || teeBox.CourseID != courseID {
		return fmt.Errorf("%w: tee box=%s", ErrNotFound, teeBoxID)
	}
	return nil
}

func (s *RoundService) loadRound(ctx context.Context, roundID string) (round.Round, []round.Participant, error) {
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return round.Round{}, nil, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}
	r, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, nil, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	participants, err := s.roundRepo.ListParticipants(ctx, roundID)
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("list participants: %w", err)
	}
	return r, participants, nil
}

func (s *RoundService) loadOwnedRound(ctx context.Context, callerProfileID, roundID string) (round.Round, error) {
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return round.Round{}, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}
	r, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	if r.OwnerProfileID != callerProfileID {
		return round.Round{}, fmt.Errorf("%w: only the round owner may do this", ErrForbidden)
	}
	return r, nil
}

// requireScorer allows the owner and any participant seated as a scorer.
func (s *RoundService) requireScorer(ctx context.Context, r round.Round, callerProfileID string) error {
	if callerProfileID == "" {
		return fmt.Errorf("%w: profile id is required", ErrUnauthorized)
	}
	if r.OwnerProfileID == callerProfileID {
		return nil
	}
	p, exists, err := s.roundRepo.GetParticipantByProfile(ctx, r.ID, callerProfileID)
	if err != nil {
		return fmt.Errorf("get participant by profile: %w", err)
	}
	if exists && (p.Role == round.RoleScorer || p.Role == round.RoleOwner) {
		return nil
	}
	return fmt.Errorf("%w: only the owner or a scorer may do this", ErrForbidden)
}

func rosterContains(participants []round.Participant, profileID string) bool {
	if profileID == "" {
		return false
	}
	for _, p := range participants {
		if !p.IsGuest() && *p.ProfileID == profileID {
			return true
		}
	}
	return false
}
