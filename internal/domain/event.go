package domain

import "time"

// AnalyticsEvent is one recorded telemetry event.
type AnalyticsEvent struct {
	ID         string
	SessionID  string
	Name       string
	Attrs      map[string]any
	RecordedAt time.Time
}

// Event names recorded by the core and the TUI.
const (
	EventPageView           = "page_view"
	EventPageUnload         = "page_unload"
	EventIntroStepViewed    = "intro_step_viewed"
	EventIntroImageViewed   = "intro_image_viewed"
	EventIntroTapAdvance    = "intro_tap_advance"
	EventIntroDone          = "intro_done"
	EventHeroStartClick     = "hero_start_click"
	EventRoadmapClick       = "roadmap_click"
	EventRevealCTAClick     = "reveal_cta_click"
	EventGiftOpened         = "gift_opened"
	EventGiftUnlocked       = "gift_unlocked"
	EventDevSetGiftUnlock   = "dev_set_gift_unlock"
	EventPuzzleAttempt      = "puzzle_attempt"
	EventPuzzleSolved       = "puzzle_solved"
	EventPuzzleDeclined     = "puzzle_unlock_declined"
	EventGift1Reorder       = "gift1_reorder"
	EventGift2CipherSubmit  = "gift2_cipher_submit"
	EventGift2InputChange   = "gift2_input_change"
	EventGift2HintClicked   = "gift2_hint_clicked"
	EventGift3StageViewed   = "gift3_stage_viewed"
	EventGift3PieceSelected = "gift3_piece_selected"
	EventGift3WrongPiece    = "gift3_select_wrong_piece"
	EventGift3MoveAttempt   = "gift3_move_attempt"
	EventGift3OpponentMove  = "gift3_opponent_move"
	EventGift3HintClicked   = "gift3_hint_clicked"
	EventGift3SequenceStart = "gift3_sequence_start"
	EventGift3SequenceLine  = "gift3_sequence_line_shown"
	EventGift3NextClicked   = "gift3_next_clicked"
	EventGift3ScrolledTo    = "gift3_scrolled_to_greedy"
	EventGift4Choice        = "gift4_choice"
	EventCelebrationShown   = "celebration_overlay_shown"
	EventCelebrationHidden  = "celebration_overlay_hidden"
	EventReplayClicked      = "replay_clicked"
)
