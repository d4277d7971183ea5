package summary

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const japanesePrompt = `以下のYouTube動画の字幕テキストを元に、日本語で%[1]d文字程度の要約を作成してください。

動画タイトル: %[2]s

字幕テキスト:
%[3]s

要約の要件:
- 動画の主要な内容やポイントを簡潔にまとめる
- 視聴者が動画を見るべきかどうか判断できる情報を含める
- 専門用語があれば適度に説明を加える
- 約%[1]d文字程度に収める

要約:`

const genericPrompt = `Write a summary of about %[1]d characters in %[4]s, based on the transcript of the YouTube video below.

Video title: %[2]s

Transcript:
%[3]s

Requirements:
- Concisely cover the main content and key points of the video
- Include what a viewer needs to decide whether to watch it
- Briefly explain any technical jargon
- Keep it to roughly %[1]d characters

Summary:`

func buildPrompt(lang string, maxChars int, title, transcript string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Japanese
	}

	if base, _ := tag.Base(); base.String() == "ja" {
		return fmt.Sprintf(japanesePrompt, maxChars, title, transcript)
	}
	return fmt.Sprintf(genericPrompt, maxChars, title, transcript, languageName(tag))
}

func languageName(tag language.Tag) string {
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return tag.String()
}
