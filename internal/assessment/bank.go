// internal/assessment/bank.go
package assessment

// Bank holds the questions and scenarios an attempt can be built from.
type Bank struct {
	Questions []Question `json:"questions"`
	Scenarios []Scenario `json:"scenarios"`
}

func (b *Bank) Question(id string) (Question, bool) {
	for _, q := range b.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

func (b *Bank) Scenario(id string) (Scenario, bool) {
	for _, s := range b.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

func opts(a, b, c, d string, pa, pb, pc, pd int) []Option {
	return []Option{
		{ID: "a", Text: a, Points: pa},
		{ID: "b", Text: b, Points: pb},
		{ID: "c", Text: c, Points: pc},
		{ID: "d", Text: d, Points: pd},
	}
}

// DefaultBank returns the built-in sales assessment.
func DefaultBank() *Bank {
	return &Bank{
		Questions: []Question{
			{ID: "q01", Category: CategoryEmpathy,
				Prompt: "Ein Interessent erzählt, dass sein letztes Projekt mit einem Anbieter gescheitert ist. Wie reagierst du?",
				Options: opts(
					"Ich frage nach, was damals schiefgelaufen ist und was ihm jetzt wichtig ist.",
					"Ich versichere ihm, dass wir das besser machen.",
					"Ich gehe direkt zur Produktdemo über.",
					"Ich wechsle das Thema, um keine negative Stimmung aufkommen zu lassen.",
					5, 3, 1, 0)},
			{ID: "q02", Category: CategoryEmpathy,
				Prompt: "Der Kunde wirkt im Gespräch gestresst und abgelenkt. Was tust du?",
				Options: opts(
					"Ich ziehe mein Skript unverändert durch.",
					"Ich spreche es an und biete an, das Gespräch zu verschieben oder zu kürzen.",
					"Ich spreche schneller, damit wir fertig werden.",
					"Ich beende das Gespräch ohne Folgetermin.",
					1, 5, 0, 0)},
			{ID: "q03", Category: CategoryHostility,
				Prompt: "Ein Angerufener beschimpft dich direkt nach der Begrüßung. Wie gehst du vor?",
				Options: opts(
					"Ich lege sofort auf.",
					"Ich antworte im gleichen Ton.",
					"Ich bleibe ruhig, entschuldige mich für die Störung und frage, ob ein anderer Zeitpunkt passt.",
					"Ich ignoriere es und pitche weiter.",
					1, 0, 5, 2)},
			{ID: "q04", Category: CategoryAcquisition,
				Prompt: "Du hast 30 Sekunden am Telefon. Womit beginnst du?",
				Options: opts(
					"Mit einer ausführlichen Firmenvorstellung.",
					"Mit einem konkreten Problem, das Firmen wie seine typischerweise haben.",
					"Mit dem Preis.",
					"Mit der Frage, ob er gerade Zeit hat, ohne Kontext.",
					1, 5, 0, 2)},
			{ID: "q05", Category: CategoryEmpathy,
				Prompt: "Eine Kundin sagt: \"Ich muss das erst mit meinem Team besprechen.\" Wie antwortest du?",
				Options: opts(
					"\"Das verstehe ich. Wer ist beteiligt und was braucht das Team für die Entscheidung?\"",
					"\"Dann melde ich mich in einem Monat wieder.\"",
					"\"Das Angebot gilt aber nur heute.\"",
					"\"Können Sie das nicht allein entscheiden?\"",
					5, 2, 0, 0)},
			{ID: "q06", Category: CategoryHostility,
				Prompt: "Ein Kunde nennt dein Angebot \"völlig überteuert\". Was ist deine erste Reaktion?",
				Options: opts(
					"Sofort einen Rabatt anbieten.",
					"Nachfragen, womit er vergleicht und welchen Wert er erwartet.",
					"Erklären, dass Qualität eben kostet, und nicht weiter darauf eingehen.",
					"Das Gespräch beenden.",
					1, 5, 2, 0)},
			{ID: "q07", Category: CategoryAcquisition,
				Prompt: "Wie bereitest du dich auf einen Kaltanruf bei einem Geschäftsführer vor?",
				Options: opts(
					"Gar nicht, Spontaneität wirkt authentischer.",
					"Ich lese die Website und LinkedIn und notiere zwei passende Aufhänger.",
					"Ich lerne das komplette Produktdatenblatt auswendig.",
					"Ich schicke vorher eine E-Mail mit allen Preisen.",
					0, 5, 2, 1)},
			{ID: "q08", Category: CategoryResilience,
				Prompt: "Du hattest heute zwanzig Absagen in Folge. Was machst du?",
				Options: opts(
					"Ich mache für heute Schluss.",
					"Ich analysiere kurz die Gespräche, passe meinen Einstieg an und telefoniere weiter.",
					"Ich beschwere mich bei meinem Teamleiter über die Leads.",
					"Ich telefoniere unverändert weiter.",
					0, 5, 1, 3)},
			{ID: "q09", Category: CategoryEmpathy,
				Prompt: "Woran erkennst du, dass ein Interessent wirklich zuhört?",
				Options: opts(
					"Er sagt häufig \"ja\".",
					"Er stellt Rückfragen und bezieht sie auf seine Situation.",
					"Er unterbricht nicht.",
					"Gar nicht, das spielt keine Rolle.",
					1, 5, 2, 0)},
			{ID: "q10", Category: CategoryHostility,
				Prompt: "Ein Bestandskunde droht im Call mit einer schlechten Bewertung. Wie reagierst du?",
				Options: opts(
					"Ich nehme die Kritik auf, fasse sie zusammen und vereinbare einen konkreten Lösungsschritt.",
					"Ich erkläre ihm, dass er das Produkt falsch nutzt.",
					"Ich verweise ihn an den Support.",
					"Ich drohe mit rechtlichen Schritten.",
					5, 0, 2, 0)},
			{ID: "q11", Category: CategoryAcquisition,
				Prompt: "Welches Ziel hat ein Erstgespräch im B2B-Vertrieb in der Regel?",
				Options: opts(
					"Den Vertrag abschließen.",
					"Bedarf qualifizieren und einen klaren nächsten Schritt vereinbaren.",
					"Das gesamte Produkt vorstellen.",
					"Möglichst lange sprechen.",
					2, 5, 1, 0)},
			{ID: "q12", Category: CategoryResilience,
				Prompt: "Dein größter Deal des Quartals platzt kurz vor Unterschrift. Was tust du zuerst?",
				Options: opts(
					"Ich frage den Kunden nach den Gründen und halte die Beziehung offen.",
					"Ich schreibe den Kunden ab.",
					"Ich suche die Schuld beim Produktteam.",
					"Ich biete einen hohen Nachlass an, um ihn zurückzuholen.",
					5, 1, 0, 2)},
			{ID: "q13", Category: CategoryEmpathy,
				Prompt: "Ein Interessent hat offensichtlich wenig Budget. Wie gehst du damit um?",
				Options: opts(
					"Ich beende das Gespräch höflich.",
					"Ich verschweige die Kosten, bis er überzeugt ist.",
					"Ich kläre offen, welche Lösung in seinem Rahmen realistisch ist.",
					"Ich überrede ihn trotzdem zum Premiumpaket.",
					2, 0, 5, 1)},
			{ID: "q14", Category: CategoryHostility,
				Prompt: "Ein Gatekeeper blockt dich zum dritten Mal ab. Was versuchst du?",
				Options: opts(
					"Ich gebe mich als Bekannter des Chefs aus.",
					"Ich behandle ihn als Verbündeten und frage, wie ich den richtigen Zeitpunkt finde.",
					"Ich werde lauter, damit er mich durchstellt.",
					"Ich rufe nie wieder an.",
					0, 5, 0, 1)},
			{ID: "q15", Category: CategoryAcquisition,
				Prompt: "Wie gehst du mit dem Einwand \"Schicken Sie mir einfach Unterlagen\" um?",
				Options: opts(
					"Ich schicke sofort alles und warte.",
					"Ich frage, welche Punkte ihn besonders interessieren, und schlage einen kurzen Folgetermin vor.",
					"Ich lehne ab.",
					"Ich lege auf.",
					2, 5, 0, 0)},
			{ID: "q16", Category: CategoryResilience,
				Prompt: "Du verfehlst dein Monatsziel deutlich. Wie planst du den nächsten Monat?",
				Options: opts(
					"Ich hoffe auf bessere Leads.",
					"Ich rechne meine Conversion-Raten zurück und plane Aktivitäten pro Woche.",
					"Ich arbeite einfach mehr Stunden.",
					"Ich senke mein Ziel.",
					0, 5, 2, 1)},
			{ID: "q17", Category: CategoryHostility,
				Prompt: "Ein Kunde unterbricht dich ständig und wird laut. Was tust du?",
				Options: opts(
					"Ich unterbreche zurück.",
					"Ich lasse ihn ausreden, wiederhole sein Kernanliegen und frage nach.",
					"Ich schweige, bis er auflegt.",
					"Ich sage ihm, dass er unhöflich ist.",
					0, 5, 1, 1)},
			{ID: "q18", Category: CategoryAcquisition,
				Prompt: "Welche Frage bringt dich in der Bedarfsanalyse am weitesten?",
				Options: opts(
					"\"Haben Sie Interesse?\"",
					"\"Was kostet Sie das Problem heute pro Monat?\"",
					"\"Kennen Sie uns schon?\"",
					"\"Wann können Sie unterschreiben?\"",
					0, 5, 1, 1)},
			{ID: "q19", Category: CategoryResilience,
				Prompt: "Ein Kollege schließt mit denselben Leads mehr ab als du. Wie reagierst du?",
				Options: opts(
					"Ich frage ihn, ob ich bei ein paar Calls zuhören darf.",
					"Ich gehe davon aus, dass er Glück hat.",
					"Ich beschwere mich über die Leadverteilung.",
					"Ich ignoriere es.",
					5, 0, 0, 1)},
			{ID: "q20", Category: CategoryResilience,
				Prompt: "Wie startest du in einen Tag mit vielen Kaltanrufen?",
				Options: opts(
					"Ich beginne mit den schwierigsten Kontakten, solange ich frisch bin.",
					"Ich erledige zuerst E-Mails und Admin.",
					"Ich warte, bis ich motiviert bin.",
					"Ich lege mir Blöcke mit festen Pausen und Zielen pro Block fest.",
					3, 1, 0, 5)},
		},
		Scenarios: []Scenario{
			{ID: "s01", Title: "Skeptischer Geschäftsführer",
				Situation: "Du rufst den Geschäftsführer eines Maschinenbauers an. Er sagt: \"Wir haben für so etwas keine Zeit und schon einen Dienstleister.\"",
				Task:      "Formuliere deine Antwort, um das Gespräch offen zu halten."},
			{ID: "s02", Title: "Verärgerte Bestandskundin",
				Situation: "Eine Kundin meldet sich verärgert, weil die Einführung zwei Wochen länger dauert als zugesagt.",
				Task:      "Schreibe, wie du reagierst und was du ihr vorschlägst."},
			{ID: "s03", Title: "Preisdiskussion",
				Situation: "Ein Einkäufer sagt: \"Ihr Wettbewerber ist 30 Prozent günstiger. Warum sollten wir bei Ihnen bleiben?\"",
				Task:      "Formuliere deine Antwort."},
			{ID: "s04", Title: "Kein Bedarf",
				Situation: "Ein Teamleiter im Vertrieb sagt am Telefon: \"Wir sind gut aufgestellt, wir brauchen nichts.\"",
				Task:      "Wie antwortest du?"},
		},
	}
}
