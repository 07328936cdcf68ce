package notebook

import (
	"context"
	"time"

	"backend-sparrow/internal/db"
	"backend-sparrow/internal/member"

	"github.com/google/uuid"
)

const statusCompleted = "Completed"

var nowFn = time.Now

func today() time.Time {
	y, m, d := nowFn().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Statuses(ctx context.Context) ([]Status, error) {
	rows, err := s.db.Query(ctx, `SELECT id, label FROM statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []Status
	for rows.Next() {
		var st Status
		if err := rows.Scan(&st.ID, &st.Label); err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func (s *Service) statusLabel(ctx context.Context, id int) (string, error) {
	var label string
	err := s.db.QueryRow(ctx, `SELECT label FROM statuses WHERE id=$1`, id).Scan(&label)
	return label, err
}

// CreateNotebook stamps the start date with today. A notebook created
// directly in Completed state gets its completion date stamped as well.
func (s *Service) CreateNotebook(ctx context.Context, accountID string, req WriteNotebook) (Notebook, error) {
	memberID, err := member.Resolve(ctx, s.db, accountID)
	if err != nil {
		return Notebook{}, err
	}

	label, err := s.statusLabel(ctx, req.StatusID)
	if err != nil {
		return Notebook{}, err
	}

	n := Notebook{
		ID:          uuid.NewString(),
		RouteID:     req.RouteID,
		MemberID:    memberID,
		StatusID:    req.StatusID,
		Status:      label,
		Title:       req.Title,
		Note:        req.Note,
		DateStarted: today(),
	}
	if label == statusCompleted {
		completed := today()
		n.DateCompleted = &completed
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO notebooks (id, route_id, member_id, status_id, title, note, date_started, date_completed)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, n.ID, n.RouteID, n.MemberID, n.StatusID, n.Title, n.Note, n.DateStarted, n.DateCompleted)
	if err != nil {
		return Notebook{}, err
	}
	return n, nil
}

// UpdateNotebook applies the status transition rules:
//   - any -> Completed: completion date stamped, start date untouched
//   - Completed -> not Completed: completion date cleared, start date reset
//   - anything else: dates untouched
func (s *Service) UpdateNotebook(ctx context.Context, id, accountID string, req WriteNotebook) (Notebook, error) {
	if _, err := member.Resolve(ctx, s.db, accountID); err != nil {
		return Notebook{}, err
	}

	var n Notebook
	row := s.db.QueryRow(ctx, `
		SELECT n.id, n.route_id, n.member_id, n.status_id, st.label, n.title, n.note, n.date_started, n.date_completed
		FROM notebooks n
		JOIN statuses st ON st.id = n.status_id
		WHERE n.id=$1
	`, id)
	if err := row.Scan(&n.ID, &n.RouteID, &n.MemberID, &n.StatusID, &n.Status, &n.Title, &n.Note, &n.DateStarted, &n.DateCompleted); err != nil {
		return Notebook{}, err
	}

	newLabel, err := s.statusLabel(ctx, req.StatusID)
	if err != nil {
		return Notebook{}, err
	}

	oldLabel := n.Status
	switch {
	case newLabel == statusCompleted:
		completed := today()
		n.DateCompleted = &completed
	case oldLabel == statusCompleted:
		// reopening a trip restarts its timer
		n.DateCompleted = nil
		n.DateStarted = today()
	}

	n.StatusID = req.StatusID
	n.Status = newLabel
	if req.RouteID != "" {
		n.RouteID = req.RouteID
	}
	if req.Title != "" {
		n.Title = req.Title
	}
	if req.Note != "" {
		n.Note = req.Note
	}

	_, err = s.db.Exec(ctx, `
		UPDATE notebooks
		SET route_id=$2, status_id=$3, title=$4, note=$5, date_started=$6, date_completed=$7
		WHERE id=$1
	`, n.ID, n.RouteID, n.StatusID, n.Title, n.Note, n.DateStarted, n.DateCompleted)
	if err != nil {
		return Notebook{}, err
	}
	return n, nil
}

func (s *Service) ListNotebooks(ctx context.Context) ([]SmallNotebook, error) {
	rows, err := s.db.Query(ctx, `
		SELECT n.id, n.title, n.note, st.label
		FROM notebooks n
		JOIN statuses st ON st.id = n.status_id
		ORDER BY n.date_started DESC, n.date_completed DESC, n.title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notebooks []SmallNotebook
	for rows.Next() {
		var sn SmallNotebook
		if err := rows.Scan(&sn.ID, &sn.Title, &sn.Note, &sn.Status); err != nil {
			return nil, err
		}
		notebooks = append(notebooks, sn)
	}
	return notebooks, nil
}

func (s *Service) GetNotebook(ctx context.Context, id string) (LargeNotebook, error) {
	row := s.db.QueryRow(ctx, `
		SELECT n.id, n.route_id, n.member_id, n.status_id, st.label, n.title, n.note, n.date_started, n.date_completed,
		       r.title, r.description, u.username
		FROM notebooks n
		JOIN statuses st ON st.id = n.status_id
		JOIN routes r ON r.id = n.route_id
		JOIN users u ON u.id = n.member_id
		WHERE n.id=$1
	`, id)

	var ln LargeNotebook
	if err := row.Scan(&ln.ID, &ln.RouteID, &ln.MemberID, &ln.StatusID, &ln.Status, &ln.Title, &ln.Note,
		&ln.DateStarted, &ln.DateCompleted, &ln.RouteTitle, &ln.RouteDescription, &ln.MemberUsername); err != nil {
		return LargeNotebook{}, err
	}
	return ln, nil
}

func (s *Service) DeleteNotebook(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM notebooks WHERE id=$1`, id)
	return err
}

func (s *Service) AddImage(ctx context.Context, notebookID, path string, takenAt time.Time) (Image, error) {
	img := Image{
		ID:      uuid.NewString(),
		Path:    path,
		TakenAt: takenAt,
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO images (id, image_path, notebook_id, taken_at)
		VALUES ($1,$2,$3,$4)
	`, img.ID, img.Path, notebookID, img.TakenAt)
	if err != nil {
		return Image{}, err
	}
	return img, nil
}
