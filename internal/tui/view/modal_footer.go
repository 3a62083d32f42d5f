package view

// EntryFormFooter renders the footer for the entry form modal.
func EntryFormFooter(isExisting bool, styles ModalStyles) string {
	if isExisting {
		return RenderModalButtonsCompact(styles, "[Enter] Save", "[d] Delete", "[Tab] Next", "[Esc] Cancel")
	}
	return RenderModalButtonsCompact(styles, "[Enter] Save", "[Tab] Next", "[Esc] Cancel")
}

// ConflictListFooter renders the footer for the conflict list modal.
func ConflictListFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[c] Copy", "[Esc] Back")
}

// InconclusiveFooter renders the footer for the inconclusive-check modal.
func InconclusiveFooter(styles ModalStyles) string {
	return RenderModalButtonsCompact(styles, "[r] Retry", "[o] Commit anyway", "[Esc] Cancel")
}

// ConfirmFooter renders the footer for yes/no confirmation modals.
func ConfirmFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[y/Enter] Confirm", "[n/Esc] Cancel")
}

// ValidationFooter renders the footer for the validation verdict modal.
func ValidationFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Esc] Close")
}
