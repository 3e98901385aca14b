package makemkv

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"mkvrobot/internal/logging"
	"mkvrobot/internal/robot"
)

// MakeMKV MSG codes. Codes >= 5000 are disc or rip level messages; codes
// below 5000 are general informational or I/O level messages.
const (
	MsgReadError            = 2003 // Read error (classify by text)
	MsgWriteError           = 2019 // Write error (fatal if "No such file")
	MsgTitleError           = 5003 // Single title save failed
	MsgRipCompleted         = 5004 // "N titles saved, M failed"
	MsgDiscOpenError        = 5010 // Can't open disc
	MsgEvalExpiredTooOld    = 5021 // License/app too old (fatal)
	MsgRipSummary           = 5037 // Copy complete summary
	MsgEvalPeriodExpired    = 5052 // Eval period warning
	MsgEvalExpiredShareware = 5055 // Shareware expired (fatal)
	MsgBackupFailed         = 5080 // Backup mode failed
)

// msgHandler reacts to MSG records and tracks the outcome of a run.
type msgHandler struct {
	logger      *slog.Logger
	cancel      context.CancelCauseFunc
	completed   bool
	savedCount  int
	failedCount int
	fatalErr    error
	readErrors  int
	bareErrors  int
}

func newMsgHandler(logger *slog.Logger, cancel context.CancelCauseFunc) *msgHandler {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cancel == nil {
		cancel = func(error) {}
	}
	return &msgHandler{logger: logger, cancel: cancel}
}

func (h *msgHandler) handle(msg robot.Message) {
	switch msg.Code {
	case MsgReadError:
		h.handleReadError(msg.Message)
	case MsgWriteError:
		h.handleWriteError(msg.Message)
	case MsgTitleError:
		h.logger.Warn("makemkv title save failed",
			slog.String(logging.FieldEventType, "makemkv_title_error"),
			slog.String(logging.FieldErrorHint, "one title failed but other titles may succeed"),
			slog.String(logging.FieldImpact, "single title missing from output"),
			slog.String("msg_text", msg.Message),
		)
	case MsgRipCompleted:
		h.handleRipCompleted(msg)
	case MsgDiscOpenError:
		h.logger.Warn("makemkv disc open error",
			slog.String(logging.FieldEventType, "makemkv_disc_open_error"),
			slog.String(logging.FieldErrorHint, "disc may not be readable or drive may be busy"),
			slog.String(logging.FieldImpact, "makemkvcon cannot proceed until the disc is accessible"),
			slog.String("msg_text", msg.Message),
		)
	case MsgEvalExpiredTooOld, MsgEvalExpiredShareware:
		h.logger.Error("makemkv license expired",
			slog.String(logging.FieldEventType, "makemkv_license_expired"),
			slog.Int("msg_code", msg.Code),
			slog.String("msg_text", msg.Message),
		)
		h.fail(&MessageError{Code: msg.Code, Message: msg.Message, Hint: "update or register MakeMKV"})
	case MsgRipSummary:
		h.logger.Info("makemkv copy summary",
			slog.String(logging.FieldEventType, "makemkv_rip_summary"),
			slog.String("msg_text", msg.Message),
		)
	case MsgEvalPeriodExpired:
		h.logger.Warn("makemkv evaluation period expiring",
			slog.String(logging.FieldEventType, "makemkv_eval_warning"),
			slog.String(logging.FieldErrorHint, "MakeMKV evaluation period is expiring; consider purchasing a license"),
			slog.String(logging.FieldImpact, "makemkvcon will stop working when evaluation expires"),
			slog.String("msg_text", msg.Message),
		)
	case MsgBackupFailed:
		h.logger.Error("makemkv backup failed",
			slog.String(logging.FieldEventType, "makemkv_backup_failed"),
			slog.String("msg_text", msg.Message),
		)
		if h.fatalErr == nil {
			h.fatalErr = &MessageError{Code: msg.Code, Message: msg.Message, Hint: "check disc readability and free space"}
		}
	default:
		if msg.Code >= 5000 {
			h.logger.Warn("makemkv disc message",
				slog.String(logging.FieldEventType, "makemkv_disc_message"),
				slog.Int("msg_code", msg.Code),
				slog.String("msg_text", msg.Message),
			)
			return
		}
		h.logger.Debug("makemkv message",
			slog.Int("msg_code", msg.Code),
			slog.String("msg_text", msg.Message),
		)
	}
}

func (h *msgHandler) fail(err error) {
	h.fatalErr = err
	h.cancel(err)
}

func (h *msgHandler) handleReadError(text string) {
	h.readErrors++
	h.logger.Warn("makemkv read error",
		slog.String(logging.FieldEventType, "makemkv_read_error"),
		slog.String(logging.FieldErrorHint, "disc may have physical damage or drive issue"),
		slog.String(logging.FieldImpact, "output may be corrupted or incomplete"),
		slog.String("classification", classifyReadError(text, "read_error")),
		slog.Int("read_error_count", h.readErrors),
		slog.String("msg_text", text),
	)
}

// handleBareLine inspects output lines that are not robot records. makemkvcon
// prints some drive errors without a MSG prefix.
func (h *msgHandler) handleBareLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !strings.Contains(strings.ToUpper(trimmed), "ERROR") {
		return
	}
	h.bareErrors++
	h.logger.Warn("makemkv disc error",
		slog.String(logging.FieldEventType, "makemkv_disc_error"),
		slog.String(logging.FieldErrorHint, "disc may have physical damage or drive issue"),
		slog.String(logging.FieldImpact, "output may be corrupted or incomplete"),
		slog.String("classification", classifyReadError(trimmed, "disc_error")),
		slog.Int("disc_error_count", h.bareErrors),
		slog.String("detail", trimmed),
	)
}

func classifyReadError(text, fallback string) string {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "TRAY OPEN"):
		return "tray_open"
	case strings.Contains(upper, "L-EC UNCORRECTABLE"):
		return "uncorrectable_read"
	case strings.Contains(upper, "HARDWARE ERROR"):
		return "hardware_error"
	case strings.Contains(upper, "MEDIUM ERROR"):
		return "medium_error"
	default:
		return fallback
	}
}

func (h *msgHandler) handleWriteError(text string) {
	h.logger.Error("makemkv write error",
		slog.String(logging.FieldEventType, "makemkv_write_error"),
		slog.String("msg_text", text),
	)
	if strings.Contains(text, "No such file") {
		h.fail(&MessageError{
			Code:    MsgWriteError,
			Message: text,
			Hint:    "check that the output directory exists and is writable",
		})
	}
}

func (h *msgHandler) handleRipCompleted(msg robot.Message) {
	saved, failed := savedAndFailed(msg)
	h.completed = true
	h.savedCount = saved
	h.failedCount = failed
	h.logger.Info("makemkv rip result",
		slog.String(logging.FieldEventType, "makemkv_rip_result"),
		slog.Int("titles_saved", saved),
		slog.Int("titles_failed", failed),
		slog.String("msg_text", msg.Message),
	)
	if saved == 0 && h.fatalErr == nil {
		h.fatalErr = &MessageError{
			Code:    MsgRipCompleted,
			Message: msg.Message,
			Hint:    "MakeMKV completed but saved 0 titles; check disc readability",
		}
	}
}

// savedAndFailed reads the counts carried as the first two parameters of a
// MSG:5004 record.
func savedAndFailed(msg robot.Message) (saved, failed int) {
	if len(msg.Params) >= 1 {
		saved, _ = strconv.Atoi(strings.TrimSpace(msg.Params[0]))
	}
	if len(msg.Params) >= 2 {
		failed, _ = strconv.Atoi(strings.TrimSpace(msg.Params[1]))
	}
	return saved, failed
}

// MessageError wraps a MakeMKV MSG code into an error with a hint.
type MessageError struct {
	Code    int
	Message string
	Hint    string
}

func (e *MessageError) Error() string {
	if e.Hint != "" {
		return e.Message + " (" + e.Hint + ")"
	}
	return e.Message
}

// FirstError returns the text of the first MSG record with code >= 5000,
// which is where makemkvcon explains why an info or rip run failed.
func FirstError(messages []robot.Message) string {
	for _, msg := range messages {
		if msg.Code >= 5000 && strings.TrimSpace(msg.Message) != "" {
			return strings.TrimSpace(msg.Message)
		}
	}
	return ""
}
