package models

// Language constants
const (
	LangEnglish = "en"
	LangGerman  = "de"
)

// Translation is a map of message keys to translated text
type Translation map[string]string

// Translations stores all language translations
var Translations = map[string]Translation{
	LangEnglish: {
		"help_title": "Turf Bot Help",
		"help_text": "/ban - ban the replied-to user for a duration (e.g. 1h30m)\n" +
			"/unban - lift a ban for the replied-to user or a user id\n" +
			"/kick - kick the replied-to user and DM a rejoin link\n" +
			"/list_start - start a new participation list in this chat\n" +
			"/list_lock - lock the active list and delete its roles\n" +
			"/list_refresh - re-render the participation list\n" +
			"/access - grant, deny or reset command permissions\n" +
			"/reminder - send the stored reminder to a user\n" +
			"/reminder_edit - change the stored reminder text",

		"reason":            "Reason",
		"permission_denied": "You are not allowed to use this command here.",
		"unknown_error":     "Something went wrong. The incident has been logged.",
		"invalid_duration":  "Invalid duration. Use tokens like 30m, 1h30m, 2d or 1w.",
		"need_reply_target": "Reply to a message of the target user to use this command.",

		"ban_dm_title":             "You have been banned from %s",
		"ban_dm_ends":              "Ban ends",
		"ban_dm_refresh_button":    "Update countdown",
		"ban_expired_title":        "Your ban in %s has expired",
		"ban_expired_desc":         "You may rejoin the community.",
		"ban_expired_pending":      "Your roles will be restored once you rejoin.",
		"ban_rejoin_link":          "Rejoin link",
		"ban_invite_failed":        "no invite could be created",
		"ban_already_active":       "That user is already banned here.",
		"ban_dm_failed":            "Could not deliver the ban notification, the user was not banned.",
		"ban_perm_failed":          "I lack the permission to ban here.",
		"ban_success":              "User banned for %s.",
		"ban_self_or_bot":          "You cannot ban yourself or the bot.",
		"ban_refresh_success":      "Countdown updated.",
		"ban_refresh_expired":      "Your ban has already expired.",
		"ban_refresh_fail_missing": "The countdown message no longer exists.",
		"ban_refresh_fail_noban":   "No active ban found for you.",

		"unban_manual_dm_title": "You have been unbanned in %s",
		"unban_manual_dm_desc":  "Unbanned by %s. Reason: %s",
		"unban_success":         "User unbanned.",
		"unban_not_banned":      "That user is not banned here.",
		"unban_perm_failed":     "I lack the permission to unban here.",

		"kick_dm_title":    "You have been kicked from %s",
		"kick_rejoin_link": "Rejoin link",
		"kick_success":     "User kicked.",
		"kick_perm_fail":   "I lack the permission to kick here.",
		"kick_self_or_bot": "You cannot kick yourself or the bot.",

		"list_header":              "Participation list",
		"list_main_title":          "Main (%d/%d)",
		"list_reserve_title":       "Reserve (%d)",
		"list_empty":               "- empty -",
		"list_footer":              "Use the buttons to join or leave.",
		"list_locked_footer":       "This list is locked.",
		"list_replaced":            "This list has been superseded.",
		"list_btn_join":            "Join",
		"list_btn_leave":           "Leave",
		"list_btn_reserve":         "Reserve",
		"list_msg_joined_main":     "You are on the main list.",
		"list_msg_joined_reserve":  "The main list is full, you are on the reserve list.",
		"list_msg_promoted":        "A main slot was free, you moved up from the reserve list.",
		"list_msg_left":            "You left the list.",
		"list_msg_moved_reserve":   "You moved to the reserve list.",
		"list_msg_promoted_notice": "%s moved up to the main list!",
		"list_err_already_main":    "You are already on the main list.",
		"list_err_already_reserve": "You are already on the reserve list.",
		"list_err_not_on_list":     "You are not on the list.",
		"list_err_locked":          "The list is locked.",
		"list_err_already_locked":  "The list is already locked.",
		"list_err_no_list":         "There is no active list.",
		"list_created":             "New participation list started.",
		"list_refreshed":           "List display refreshed.",
		"list_locked":              "List locked, roles deleted and slots cleared.",

		"perms_usage":       "Usage: /access grant|deny|reset <command> role|user <id>",
		"perms_set":         "Permission rule stored.",
		"perms_reset":       "Permission rule removed.",
		"perms_bad_target":  "Unknown target kind, use role or user.",
		"perms_bad_command": "Unknown command name.",

		"reminder_dm_prefix":    "Reminder from %s",
		"reminder_sent":         "Reminder sent.",
		"reminder_dm_fail":      "Could not DM that user.",
		"reminder_edit_success": "Reminder text updated.",
		"reminder_default":      "This is a default reminder!",

		"cmd_desc_help":          "Show command help",
		"cmd_desc_ban":           "Ban a user for a duration",
		"cmd_desc_unban":         "Lift a ban",
		"cmd_desc_kick":          "Kick a user with a rejoin link",
		"cmd_desc_list_start":    "Start a participation list",
		"cmd_desc_list_lock":     "Lock the participation list",
		"cmd_desc_list_refresh":  "Re-render the participation list",
		"cmd_desc_access":        "Manage command permissions",
		"cmd_desc_reminder":      "Send the stored reminder",
		"cmd_desc_reminder_edit": "Edit the stored reminder text",
		"cmd_desc_message_role":  "Message every holder of a role",
		"cmd_desc_language":      "Set the community language",

		"message_role_usage":   "Usage: /message_role <role> <text>",
		"message_role_no_role": "No such role here.",
		"message_role_sent":    "Delivered to %d role holders.",

		"language_usage": "Usage: /language en|de",
		"language_set":   "Language set to English.",

		"bridge_usage": "Usage: /bridge_intro <text>, /bridge_format <format>, " +
			"/bridge_webhook <https url>, /bridge_preset <name> <format>, " +
			"/bridge_preset_load <name>, /bridge_presets",
		"bridge_intro_set":      "Relay intro updated.",
		"bridge_format_set":     "Relay format updated.",
		"bridge_webhook_set":    "Relay webhook updated.",
		"bridge_preset_saved":   "Preset saved.",
		"bridge_preset_loaded":  "Preset is now the active format.",
		"bridge_preset_missing": "No preset with that name.",
		"bridge_presets_header": "Stored presets",
		"bridge_presets_empty":  "No presets stored yet.",
		"bridge_relayed":        "Relayed to your webhook.",
	},
	LangGerman: {
		"help_title": "Turf Bot Hilfe",
		"help_text": "/ban - sperrt den Nutzer der beantworteten Nachricht (z.B. 1h30m)\n" +
			"/unban - hebt eine Sperre auf\n" +
			"/kick - entfernt den Nutzer und sendet einen Einladungslink\n" +
			"/list_start - startet eine neue Teilnehmerliste in diesem Chat\n" +
			"/list_lock - sperrt die aktive Liste und entfernt die Rollen\n" +
			"/list_refresh - aktualisiert die Listenanzeige\n" +
			"/access - Befehlsrechte vergeben, verweigern oder löschen\n" +
			"/reminder - sendet die gespeicherte Erinnerung an einen Nutzer\n" +
			"/reminder_edit - ändert den Erinnerungstext",

		"reason":            "Grund",
		"permission_denied": "Du darfst diesen Befehl hier nicht verwenden.",
		"unknown_error":     "Etwas ist schiefgelaufen. Der Vorfall wurde protokolliert.",
		"invalid_duration":  "Ungültige Dauer. Nutze z.B. 30m, 1h30m, 2d oder 1w.",
		"need_reply_target": "Antworte auf eine Nachricht des Zielnutzers.",

		"ban_dm_title":             "Du wurdest aus %s gebannt",
		"ban_dm_ends":              "Bann endet",
		"ban_dm_refresh_button":    "Countdown aktualisieren",
		"ban_expired_title":        "Dein Bann in %s ist abgelaufen",
		"ban_expired_desc":         "Du kannst der Community wieder beitreten.",
		"ban_expired_pending":      "Deine Rollen werden beim Wiederbeitritt wiederhergestellt.",
		"ban_rejoin_link":          "Einladungslink",
		"ban_invite_failed":        "es konnte keine Einladung erstellt werden",
		"ban_already_active":       "Dieser Nutzer ist hier bereits gebannt.",
		"ban_dm_failed":            "Die Bann-Benachrichtigung konnte nicht zugestellt werden, der Nutzer wurde nicht gebannt.",
		"ban_perm_failed":          "Mir fehlt die Berechtigung zum Bannen.",
		"ban_success":              "Nutzer für %s gebannt.",
		"ban_self_or_bot":          "Du kannst weder dich selbst noch den Bot bannen.",
		"ban_refresh_success":      "Countdown aktualisiert.",
		"ban_refresh_expired":      "Dein Bann ist bereits abgelaufen.",
		"ban_refresh_fail_missing": "Die Countdown-Nachricht existiert nicht mehr.",
		"ban_refresh_fail_noban":   "Kein aktiver Bann für dich gefunden.",

		"unban_manual_dm_title": "Du wurdest in %s entbannt",
		"unban_manual_dm_desc":  "Entbannt von %s. Grund: %s",
		"unban_success":         "Nutzer entbannt.",
		"unban_not_banned":      "Dieser Nutzer ist hier nicht gebannt.",
		"unban_perm_failed":     "Mir fehlt die Berechtigung zum Entbannen.",

		"kick_dm_title":    "Du wurdest aus %s entfernt",
		"kick_rejoin_link": "Einladungslink",
		"kick_success":     "Nutzer entfernt.",
		"kick_perm_fail":   "Mir fehlt die Berechtigung zum Entfernen.",
		"kick_self_or_bot": "Du kannst weder dich selbst noch den Bot entfernen.",

		"list_header":              "Teilnehmerliste",
		"list_main_title":          "Hauptliste (%d/%d)",
		"list_reserve_title":       "Reserve (%d)",
		"list_empty":               "- leer -",
		"list_footer":              "Nutze die Buttons zum Ein- und Austragen.",
		"list_locked_footer":       "Diese Liste ist gesperrt.",
		"list_replaced":            "Diese Liste wurde ersetzt.",
		"list_btn_join":            "Eintragen",
		"list_btn_leave":           "Austragen",
		"list_btn_reserve":         "Reserve",
		"list_msg_joined_main":     "Du stehst auf der Hauptliste.",
		"list_msg_joined_reserve":  "Die Hauptliste ist voll, du stehst auf der Reserveliste.",
		"list_msg_promoted":        "Ein Platz war frei, du bist von der Reserve aufgerückt.",
		"list_msg_left":            "Du hast die Liste verlassen.",
		"list_msg_moved_reserve":   "Du bist auf die Reserveliste gewechselt.",
		"list_msg_promoted_notice": "%s ist auf die Hauptliste aufgerückt!",
		"list_err_already_main":    "Du stehst bereits auf der Hauptliste.",
		"list_err_already_reserve": "Du stehst bereits auf der Reserveliste.",
		"list_err_not_on_list":     "Du stehst nicht auf der Liste.",
		"list_err_locked":          "Die Liste ist gesperrt.",
		"list_err_already_locked":  "Die Liste ist bereits gesperrt.",
		"list_err_no_list":         "Es gibt keine aktive Liste.",
		"list_created":             "Neue Teilnehmerliste gestartet.",
		"list_refreshed":           "Listenanzeige aktualisiert.",
		"list_locked":              "Liste gesperrt, Rollen gelöscht und Plätze geleert.",

		"perms_usage":       "Verwendung: /access grant|deny|reset <Befehl> role|user <Id>",
		"perms_set":         "Berechtigungsregel gespeichert.",
		"perms_reset":       "Berechtigungsregel entfernt.",
		"perms_bad_target":  "Unbekannter Zieltyp, nutze role oder user.",
		"perms_bad_command": "Unbekannter Befehlsname.",

		"reminder_dm_prefix":    "Erinnerung von %s",
		"reminder_sent":         "Erinnerung gesendet.",
		"reminder_dm_fail":      "Der Nutzer konnte nicht per DM erreicht werden.",
		"reminder_edit_success": "Erinnerungstext aktualisiert.",
		"reminder_default":      "Das ist eine Standard-Erinnerung!",

		"cmd_desc_help":          "Befehlshilfe anzeigen",
		"cmd_desc_ban":           "Nutzer für eine Dauer sperren",
		"cmd_desc_unban":         "Sperre aufheben",
		"cmd_desc_kick":          "Nutzer mit Einladungslink entfernen",
		"cmd_desc_list_start":    "Teilnehmerliste starten",
		"cmd_desc_list_lock":     "Teilnehmerliste sperren",
		"cmd_desc_list_refresh":  "Teilnehmerliste neu anzeigen",
		"cmd_desc_access":        "Befehlsrechte verwalten",
		"cmd_desc_reminder":      "Gespeicherte Erinnerung senden",
		"cmd_desc_reminder_edit": "Erinnerungstext bearbeiten",
		"cmd_desc_message_role":  "Nachricht an alle Rolleninhaber senden",
		"cmd_desc_language":      "Sprache der Community festlegen",

		"message_role_usage":   "Verwendung: /message_role <Rolle> <Text>",
		"message_role_no_role": "Diese Rolle gibt es hier nicht.",
		"message_role_sent":    "An %d Rolleninhaber zugestellt.",

		"language_usage": "Verwendung: /language en|de",
		"language_set":   "Sprache auf Deutsch gestellt.",

		"bridge_usage": "Verwendung: /bridge_intro <Text>, /bridge_format <Format>, " +
			"/bridge_webhook <https-URL>, /bridge_preset <Name> <Format>, " +
			"/bridge_preset_load <Name>, /bridge_presets",
		"bridge_intro_set":      "Relay-Einleitung aktualisiert.",
		"bridge_format_set":     "Relay-Format aktualisiert.",
		"bridge_webhook_set":    "Relay-Webhook aktualisiert.",
		"bridge_preset_saved":   "Preset gespeichert.",
		"bridge_preset_loaded":  "Preset ist jetzt das aktive Format.",
		"bridge_preset_missing": "Kein Preset mit diesem Namen.",
		"bridge_presets_header": "Gespeicherte Presets",
		"bridge_presets_empty":  "Noch keine Presets gespeichert.",
		"bridge_relayed":        "An deinen Webhook weitergeleitet.",
	},
}

// GetTranslation returns the translation for a key in the given language
func GetTranslation(lang, key string) string {
	// Default to English if language not supported
	if _, ok := Translations[lang]; !ok {
		lang = LangEnglish
	}

	// Get translation for key
	if translation, ok := Translations[lang][key]; ok {
		return translation
	}

	// Fall back to English if key not found in specified language
	if translation, ok := Translations[LangEnglish][key]; ok {
		return translation
	}

	return key
}
