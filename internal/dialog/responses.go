package dialog

import (
	"fmt"
	"strings"

	"taskvoice/internal/models"
	"taskvoice/internal/nlp"
)

// MaxResponseLength is the voice platform's cap on a spoken answer
const MaxResponseLength = 1024

// Spoken response phrases (Russian, matching the NLU grammar's language)
const (
	respUnknown = "Не поняла команду. Скажите «помощь», чтобы узнать, что я умею."

	respTaskNameRequired     = "Как назвать задачу? Скажите название."
	respCompleteNameRequired = "Какую задачу отметить выполненной? Скажите название."
	respSearchQueryRequired  = "Какую задачу найти? Скажите название или часть названия."
	respEditNameRequired     = "Какую задачу изменить? Скажите название."
	respEditNoChanges        = "Не поняла, что изменить. Скажите, например: «перенеси на завтра» или «поменяй приоритет на высокий»."
	respDeleteNameRequired   = "Какую задачу удалить? Скажите название."
	respDeleteCancelled      = "Отменила удаление."
	respDeleteConfirmPrompt  = "Скажите «да» для удаления или «нет» для отмены."

	respSubtaskParentRequired   = "Назовите задачу, к которой нужно добавить подзадачу."
	respSubtaskNameRequired     = "Как назвать подзадачу?"
	respListSubtasksRequired    = "Назовите задачу, подзадачи которой показать."
	respChecklistTaskRequired   = "Назовите задачу для чеклиста."
	respChecklistItemRequired   = "Что добавить в чеклист?"
	respShowChecklistRequired   = "Назовите задачу, чеклист которой показать."
	respReminderTaskRequired    = "К какой задаче добавить напоминание?"
	respReminderValueRequired   = "За сколько напомнить? Скажите, например, «за 30 минут» или «за час»."
	respRecurrenceFreqRequired  = "Как часто повторять задачу? Скажите, например, «каждый день» или «по будням»."
	respNoTasksToday            = "На сегодня задач нет. Можно отдыхать!"
	respNoOverdue               = "Просроченных задач нет. Отличная работа!"
)

func respTaskCreated(name string) string {
	return fmt.Sprintf("Готово! Задача «%s» создана.", name)
}

func respTaskCreatedWithDate(name, date string) string {
	return fmt.Sprintf("Готово! Задача «%s» создана на %s.", name, date)
}

func respTaskCreatedRecurring(name, recurrence string) string {
	return fmt.Sprintf("Готово! Задача «%s» создана, %s.", name, recurrence)
}

func respTaskCreatedWithReminder(name, reminder string) string {
	return fmt.Sprintf("Готово! Задача «%s» создана с напоминанием %s.", name, reminder)
}

func respTaskCreatedRecurringWithReminder(name, recurrence, reminder string) string {
	return fmt.Sprintf("Готово! Задача «%s» создана, %s, напоминание %s.", name, recurrence, reminder)
}

func respTaskCompleted(name string) string {
	return fmt.Sprintf("Задача «%s» отмечена выполненной.", name)
}

func respTaskNotFound(name string) string {
	return fmt.Sprintf("Задача «%s» не найдена. Попробуйте сказать точнее.", name)
}

func respTasksForDate(date string, tasks []models.Task) string {
	header := fmt.Sprintf("На %s %s:", date, nlp.PluralizeTasks(len(tasks)))
	return truncate(header + "\n" + taskLines(tasks))
}

func respNoTasksForDate(date string) string {
	return fmt.Sprintf("На %s задач нет.", date)
}

func respOverdue(tasks []models.Task) string {
	header := fmt.Sprintf("Просрочено %s:", nlp.PluralizeTasks(len(tasks)))
	return truncate(header + "\n" + taskLines(tasks))
}

func respSearchResults(tasks []models.Task) string {
	header := fmt.Sprintf("Найдено %s:", nlp.PluralizeTasks(len(tasks)))
	return truncate(header + "\n" + taskLines(tasks))
}

func respSearchNoResults(query string) string {
	return fmt.Sprintf("По запросу «%s» ничего не найдено.", query)
}

func respProjectNotFound(name string, available []string) string {
	if len(available) == 0 {
		return truncate(fmt.Sprintf("Не нашла список «%s».", name))
	}
	return truncate(fmt.Sprintf("Не нашла список «%s». Доступные списки: %s.", name, strings.Join(available, ", ")))
}

func respEditSuccess(name string) string {
	return fmt.Sprintf("Задача «%s» обновлена.", name)
}

func respRecurrenceUpdated(name, recurrence string) string {
	return fmt.Sprintf("Повторение задачи «%s» изменено: %s.", name, recurrence)
}

func respRecurrenceRemoved(name string) string {
	return fmt.Sprintf("Повторение задачи «%s» убрано.", name)
}

func respReminderAdded(reminder, name string) string {
	return fmt.Sprintf("Напоминание %s добавлено к задаче «%s».", reminder, name)
}

func respReminderUpdated(name, reminder string) string {
	return truncate(fmt.Sprintf("Поставила напоминание %s для задачи «%s».", reminder, name))
}

func respReminderRemoved(name string) string {
	return fmt.Sprintf("Напоминание задачи «%s» убрано.", name)
}

func respDeleteConfirm(name string) string {
	return fmt.Sprintf("Удалить задачу «%s»? Скажите да или нет.", name)
}

func respDeleteSuccess(name string) string {
	return fmt.Sprintf("Задача «%s» удалена.", name)
}

func respSubtaskCreated(name, parent string) string {
	return fmt.Sprintf("Подзадача «%s» добавлена к задаче «%s».", name, parent)
}

func respNoSubtasks(name string) string {
	return fmt.Sprintf("У задачи «%s» нет подзадач.", name)
}

func respSubtasks(name string, subtasks []models.Task) string {
	header := fmt.Sprintf("Подзадачи «%s» (%d):", name, len(subtasks))
	return truncate(header + "\n" + taskLines(subtasks))
}

func respChecklistItemAdded(item, task string, count int) string {
	return fmt.Sprintf("Добавила «%s» в чеклист задачи «%s». Всего пунктов: %d.", item, task, count)
}

func respChecklistEmpty(name string) string {
	return fmt.Sprintf("Чеклист задачи «%s» пуст.", name)
}

func respChecklist(name string, items []models.ChecklistItem) string {
	out := fmt.Sprintf("Чеклист задачи «%s»:", name)
	for i, item := range items {
		mark := ""
		if item.Status != 0 {
			mark = " [готово]"
		}
		out += fmt.Sprintf("\n%d. %s%s", i+1, item.Title, mark)
	}
	return truncate(out)
}

func respChecklistItemChecked(item string) string {
	return fmt.Sprintf("Пункт «%s» отмечен выполненным.", item)
}

func respChecklistItemNotFound(item, task string) string {
	return fmt.Sprintf("Пункт «%s» не найден в чеклисте задачи «%s».", item, task)
}

func respChecklistItemDeleted(item, task string) string {
	return fmt.Sprintf("Пункт «%s» удалён из чеклиста задачи «%s».", item, task)
}

// taskLines formats at most five tasks for listing, with a terse priority
// marker voice output can carry.
func taskLines(tasks []models.Task) string {
	const maxListed = 5

	out := ""
	for i, t := range tasks {
		if i == maxListed {
			break
		}
		marker := ""
		switch t.Priority {
		case models.PriorityHigh:
			marker = " [!]"
		case models.PriorityMedium:
			marker = " [~]"
		case models.PriorityLow:
			marker = " [.]"
		}
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("%d. %s%s", i+1, t.Title, marker)
	}
	return out
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxResponseLength {
		return text
	}
	return string(runes[:MaxResponseLength-1]) + "…"
}
