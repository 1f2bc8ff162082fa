package program

import (
	"time"

	"github.com/abitbot/curriculum/internal/curriculum"
)

// mockPrograms is the demo fallback returned when live extraction produced
// no courses for any program. The data mirrors the real programs closely
// enough for downstream consumers to exercise every rendering path.
func mockPrograms(now time.Time) []Program {
	aiCourses := []curriculum.Course{
		{
			ID:          "ai_1",
			Name:        "Основы машинного обучения",
			Credits:     6,
			Hours:       216,
			Semester:    1,
			Description: "Изучение базовых алгоритмов машинного обучения, линейных моделей, деревьев решений.",
		},
		{
			ID:          "ai_2",
			Name:        "Глубокое обучение",
			Credits:     6,
			Hours:       216,
			Semester:    2,
			Description: "Нейронные сети, сверточные и рекуррентные архитектуры, трансформеры.",
		},
		{
			ID:          "ai_3",
			Name:        "Компьютерное зрение",
			Credits:     5,
			Hours:       180,
			Semester:    2,
			IsElective:  true,
			Description: "Обработка изображений, детекция объектов, семантическая сегментация.",
		},
		{
			ID:          "ai_4",
			Name:        "Обработка естественного языка",
			Credits:     5,
			Hours:       180,
			Semester:    3,
			IsElective:  true,
			Description: "Анализ текстов, языковые модели, машинный перевод.",
		},
		{
			ID:          "ai_5",
			Name:        "Математические методы в ИИ",
			Credits:     4,
			Hours:       144,
			Semester:    1,
			Description: "Линейная алгебра, теория вероятностей, оптимизация для ИИ.",
		},
		{
			ID:          "ai_6",
			Name:        "Этика ИИ и безопасность",
			Credits:     3,
			Hours:       108,
			Semester:    3,
			IsElective:  true,
			Description: "Этические аспекты ИИ, безопасность алгоритмов, объяснимость.",
		},
		{
			ID:          "ai_7",
			Name:        "Проектная деятельность",
			Credits:     8,
			Hours:       288,
			Semester:    4,
			Description: "Выполнение итогового проекта с применением изученных технологий ИИ.",
		},
	}

	aiProductCourses := []curriculum.Course{
		{
			ID:          "aip_1",
			Name:        "Управление AI-продуктами",
			Credits:     6,
			Hours:       216,
			Semester:    1,
			Description: "Методология разработки AI-продуктов, жизненный цикл, метрики.",
		},
		{
			ID:          "aip_2",
			Name:        "Data Science для продуктов",
			Credits:     6,
			Hours:       216,
			Semester:    1,
			Description: "Анализ данных, A/B тестирование, построение аналитических дашбордов.",
		},
		{
			ID:          "aip_3",
			Name:        "MLOps и инфраструктура",
			Credits:     5,
			Hours:       180,
			Semester:    2,
			Description: "Развертывание ML-моделей, мониторинг, CI/CD для ML.",
		},
		{
			ID:          "aip_4",
			Name:        "Бизнес-анализ AI-решений",
			Credits:     4,
			Hours:       144,
			Semester:    2,
			IsElective:  true,
			Description: "ROI AI-проектов, оценка эффективности, бизнес-кейсы.",
		},
		{
			ID:          "aip_5",
			Name:        "UX/UI для AI-продуктов",
			Credits:     4,
			Hours:       144,
			Semester:    3,
			IsElective:  true,
			Description: "Проектирование интерфейсов с ИИ, пользовательский опыт.",
		},
		{
			ID:          "aip_6",
			Name:        "Правовые аспекты ИИ",
			Credits:     3,
			Hours:       108,
			Semester:    3,
			IsElective:  true,
			Description: "Регулирование ИИ, GDPR, интеллектуальная собственность.",
		},
		{
			ID:          "aip_7",
			Name:        "Стартап в области ИИ",
			Credits:     6,
			Hours:       216,
			Semester:    4,
			Description: "Создание AI-стартапа от идеи до MVP и первых продаж.",
		},
	}

	return []Program{
		{
			ID:      "ai",
			Name:    "Искусственный интеллект",
			URL:     "https://abit.itmo.ru/program/master/ai",
			Courses: aiCourses,
			Description: "Программа готовит специалистов в области искусственного интеллекта. " +
				"Студенты изучают машинное обучение, нейронные сети, компьютерное зрение, " +
				"обработку естественного языка.",
			ParsedAt: now,
		},
		{
			ID:      "ai_product",
			Name:    "Управление ИИ-продуктами/AI Product",
			URL:     "https://abit.itmo.ru/program/master/ai_product",
			Courses: aiProductCourses,
			Description: "Программа для тех, кто хочет создавать и управлять AI-продуктами. " +
				"Изучение методологий разработки, бизнес-анализа, UX для ИИ, правовых аспектов.",
			ParsedAt: now,
		},
	}
}
