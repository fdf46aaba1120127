package coach

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/match"
	"github.com/abhisek/mockmentor/internal/selection"
	"github.com/abhisek/mockmentor/internal/session"
)

// DefaultInterviewLength is the number of questions when none is given.
const DefaultInterviewLength = 5

// Fit scores a candidate against a job.
func (s *Service) Fit(c match.Candidate, j match.Job) match.Result {
	r := match.Analyze(c, j)
	s.logger.Debug("fit analyzed",
		zap.String("job_title", r.JobTitle),
		zap.Float64("overall_score", r.OverallScore),
		zap.Int("gaps", len(r.Gaps)))
	return r
}

// InterviewOptions configure a new interview.
type InterviewOptions struct {
	Mode  selection.Mode
	Topic string
	Count int
	// Fit, when set, attaches the match score and job title to the report.
	Fit *match.Result
}

// StartInterview plans questions with the selection engine and begins a new
// interview. It becomes the user's current interview.
func (s *Service) StartInterview(ctx context.Context, userID string, opts InterviewOptions) (*session.Session, error) {
	if opts.Mode == "" {
		opts.Mode = selection.ModeBalanced
	}
	if opts.Count <= 0 {
		opts.Count = DefaultInterviewLength
	}

	qs, err := s.Plan(ctx, userID, opts.Mode, opts.Topic, opts.Count)
	if err != nil {
		return nil, err
	}

	sess := session.Start(uuid.NewString(), userID, string(opts.Mode), qs, s.now())
	if opts.Fit != nil {
		score := opts.Fit.OverallScore
		sess.MatchScore = &score
		sess.JobTitle = opts.Fit.JobTitle
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("start interview: %w", err)
	}

	s.logger.Info("interview started",
		zap.String("user_id", userID),
		zap.String("session_id", sess.ID),
		zap.Int("questions", len(qs)))
	return sess, nil
}

// CurrentInterview returns the user's most recent interview.
func (s *Service) CurrentInterview(ctx context.Context, userID string) (*session.Session, error) {
	return s.sessions.Latest(ctx, userID)
}

// InterviewReply is one scored reply in an interview.
type InterviewReply struct {
	Text       string
	Score      float64
	Feedback   string
	Confidence int
	// FollowUp keeps the interview on the same question one level deeper.
	FollowUp bool
}

// InterviewTurn is the interview state after a reply.
type InterviewTurn struct {
	Answer   session.Answer    `json:"answer"`
	Mastery  *AnswerOutcome    `json:"recorded,omitempty"`
	FollowUp bool              `json:"follow_up"`
	Next     *catalog.Question `json:"next,omitempty"`
	Progress session.Progress  `json:"progress"`
	Complete bool              `json:"complete"`
}

// AnswerInterview records a reply to the current question. The first reply
// to a question also updates mastery like SubmitAnswer; follow-up replies
// only go into the interview. The interview then moves on, unless a
// follow-up was asked for and the question still has depth left.
func (s *Service) AnswerInterview(ctx context.Context, userID string, reply InterviewReply) (InterviewTurn, error) {
	if math.IsNaN(reply.Score) || reply.Score < 0 || reply.Score > 10 {
		return InterviewTurn{}, fmt.Errorf("%w (got %v)", ErrInvalidScore, reply.Score)
	}

	sess, err := s.sessions.Latest(ctx, userID)
	if err != nil {
		return InterviewTurn{}, err
	}
	q, ok := sess.Current()
	if !ok {
		return InterviewTurn{}, session.ErrComplete
	}

	var turn InterviewTurn
	if sess.Depth == 0 {
		out, err := s.SubmitAnswer(ctx, userID, q.ID, reply.Score, reply.Confidence)
		if err != nil {
			return InterviewTurn{}, err
		}
		turn.Mastery = &out
	}

	turn.Answer, err = sess.Record(reply.Text, reply.Score, reply.Feedback, s.now())
	if err != nil {
		return InterviewTurn{}, err
	}
	turn.FollowUp = reply.FollowUp && sess.FollowUp()
	if !turn.FollowUp {
		sess.Advance()
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return InterviewTurn{}, fmt.Errorf("save interview: %w", err)
	}

	if next, ok := sess.Current(); ok {
		turn.Next = &next
	}
	turn.Progress = sess.Progress()
	turn.Complete = sess.Complete()

	s.logger.Debug("interview reply recorded",
		zap.String("user_id", userID),
		zap.String("session_id", sess.ID),
		zap.String("question_id", q.ID),
		zap.Int("depth", turn.Answer.Depth),
		zap.Bool("follow_up", turn.FollowUp))
	return turn, nil
}

// InterviewReport evaluates the user's most recent interview. A finished
// interview is timed up to its last reply.
func (s *Service) InterviewReport(ctx context.Context, userID string) (*session.Report, error) {
	sess, err := s.sessions.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	return session.BuildReport(sess, interviewEnd(sess, s.now()))
}

func interviewEnd(sess *session.Session, now time.Time) time.Time {
	if sess.Complete() && len(sess.Answers) > 0 {
		return sess.Answers[len(sess.Answers)-1].AnsweredAt
	}
	return now
}
