package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizapi/domain"
	"quizapi/pack"
)

// EngineFactory builds a fresh engine for one session's question package.
type EngineFactory func(pkg pack.Package) Engine

// SessionDescription is the lobby card of one session.
type SessionDescription struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Stage       string `json:"stage"`
	Persons     int    `json:"persons"`
	HasPassword bool   `json:"hasPassword"`
}

// Manager is the process-wide session registry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	engines   EngineFactory
	share     ContentShare
	passwords PasswordChecker
	log       *slog.Logger

	// SessionFinished receives the session's final report data.
	SessionFinished func(s *Session)
}

func NewManager(engines EngineFactory, share ContentShare, passwords PasswordChecker, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}

	return &Manager{
		sessions:  make(map[string]*Session),
		engines:   engines,
		share:     share,
		passwords: passwords,
		log:       log,
	}
}

// Create registers a new session around the given package and settings.
func (m *Manager) Create(settings Settings, pkg pack.Package) *Session {
	id := uuid.NewString()
	engine := m.engines(pkg)

	session := NewSession(id, settings, Dependencies{
		Engine:    engine,
		Share:     m.share,
		Errors:    &managerSink{manager: m, sessionId: id},
		Passwords: m.passwords,
		Log:       m.log.With("session", id),
	})

	if exec, ok := engine.(interface{ SetExec(func(task Task, arg int)) }); ok {
		exec.SetExec(session.HandleTask)
	}

	// Runs under the session lock; the removal itself must not.
	session.personsChanged = func() {
		for _, a := range session.state.AllPersons {
			if a.IsConnected {
				return
			}
		}
		go m.Remove(id)
	}

	if settings.Automatic && settings.AutoStart > 0 {
		time.AfterFunc(settings.AutoStart, session.AutoGame)
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	m.log.Info("session created", "session", id, "name", settings.Name)
	return session
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return
	}

	if m.SessionFinished != nil {
		m.SessionFinished(session)
	}

	m.log.Info("session removed", "session", id)
}

// Descriptions lists every live session for the lobby.
func (m *Manager) Descriptions() []SessionDescription {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]SessionDescription, 0, len(m.sessions))

	for _, s := range m.sessions {
		res = append(res, s.Description())
	}

	return res
}

// managerSink routes session faults into the registry: handler errors get
// logged, fatal faults tear the session down.
type managerSink struct {
	manager   *Manager
	sessionId string
}

func (ms *managerSink) Error(err error) {
	ms.manager.log.Error("session error", "session", ms.sessionId, "error", err)
}

func (ms *managerSink) Fatal(err error) {
	ms.manager.log.Error("fatal session error", "session", ms.sessionId, "error", err)
	go ms.manager.Remove(ms.sessionId)
}
