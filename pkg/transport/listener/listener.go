package listener

import (
	"context"
	"encoding/json"

	"github.com/Koyo-os/learnhub-admin/internal/editor"
	"github.com/Koyo-os/learnhub-admin/internal/entity"
	"github.com/Koyo-os/learnhub-admin/internal/service"
	"github.com/Koyo-os/learnhub-admin/pkg/config"
	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	// updateRequest carries a partial update of one entity.
	updateRequest struct {
		ID     string         `json:"id"`
		Values map[string]any `json:"values"`
	}

	// deleteRequest identifies the entity to remove.
	deleteRequest struct {
		ID string `json:"id"`
	}

	// questionsRequest carries a finalized questionnaire for one content
	// item.
	questionsRequest struct {
		ContentID string            `json:"content_id"`
		Questions []editor.Question `json:"questions"`
	}

	Listener struct {
		inputChan chan entity.Event
		logger    *logger.Logger
		service   *service.Service
		cfg       *config.Config
	}
)

func Init(
	inputChan chan entity.Event,
	logger *logger.Logger,
	cfg *config.Config,
	service *service.Service,
) *Listener {
	return &Listener{
		inputChan: inputChan,
		service:   service,
		logger:    logger,
		cfg:       cfg,
	}
}

// Listen dispatches incoming request events to the matching service
// operation until ctx is cancelled.
func (list *Listener) Listen(ctx context.Context) {
	for {
		select {
		case event := <-list.inputChan:
			if err := list.dispatch(event); err != nil {
				list.logger.Error("error handle event",
					zap.String("event_type", event.Type),
					zap.String("event_id", event.ID),
					zap.Error(err))
			}

		case <-ctx.Done():
			list.logger.Info("stopping listeners...")
			return
		}
	}
}

func (list *Listener) dispatch(event entity.Event) error {
	switch event.Type {
	case list.cfg.Reqs.CreateModuleRequestType:
		module := new(entity.Module)
		if err := json.Unmarshal(event.Payload, module); err != nil {
			return err
		}
		return list.service.CreateModule(module)

	case list.cfg.Reqs.UpdateModuleRequestType:
		var req updateRequest
		id, err := decodeUpdate(event.Payload, &req)
		if err != nil {
			return err
		}
		return list.service.UpdateModule(id, req.Values)

	case list.cfg.Reqs.DeleteModuleRequestType:
		id, err := decodeDelete(event.Payload)
		if err != nil {
			return err
		}
		return list.service.DeleteModule(id)

	case list.cfg.Reqs.CreateContentRequestType:
		content := new(entity.Content)
		if err := json.Unmarshal(event.Payload, content); err != nil {
			return err
		}
		return list.service.CreateContent(content)

	case list.cfg.Reqs.UpdateContentRequestType:
		var req updateRequest
		id, err := decodeUpdate(event.Payload, &req)
		if err != nil {
			return err
		}
		return list.service.UpdateContent(id, req.Values)

	case list.cfg.Reqs.DeleteContentRequestType:
		id, err := decodeDelete(event.Payload)
		if err != nil {
			return err
		}
		return list.service.DeleteContent(id)

	case list.cfg.Reqs.SaveQuestionsRequestType:
		var req questionsRequest
		if err := json.Unmarshal(event.Payload, &req); err != nil {
			return err
		}
		contentID, err := uuid.Parse(req.ContentID)
		if err != nil {
			return err
		}
		return list.service.SaveQuestionnaire(contentID, req.Questions)

	case list.cfg.Reqs.CreatePlaylistRequestType:
		playlist := new(entity.Playlist)
		if err := json.Unmarshal(event.Payload, playlist); err != nil {
			return err
		}
		return list.service.CreatePlaylist(playlist)

	case list.cfg.Reqs.UpdatePlaylistRequestType:
		var req updateRequest
		id, err := decodeUpdate(event.Payload, &req)
		if err != nil {
			return err
		}
		return list.service.UpdatePlaylist(id, req.Values)

	case list.cfg.Reqs.InviteUserRequestType:
		user := new(entity.User)
		if err := json.Unmarshal(event.Payload, user); err != nil {
			return err
		}
		return list.service.InviteUser(user)

	case list.cfg.Reqs.UpdateUserRequestType:
		var req updateRequest
		id, err := decodeUpdate(event.Payload, &req)
		if err != nil {
			return err
		}
		return list.service.UpdateUser(id, req.Values)

	default:
		list.logger.Warn("unknown event type",
			zap.String("event_type", event.Type),
			zap.String("event_id", event.ID))
		return nil
	}
}

func decodeUpdate(payload []byte, req *updateRequest) (uuid.UUID, error) {
	if err := json.Unmarshal(payload, req); err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(req.ID)
}

func decodeDelete(payload []byte) (uuid.UUID, error) {
	var req deleteRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(req.ID)
}
