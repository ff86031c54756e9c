package config

// defaultSettings mirrors what `abc init` writes.
const defaultSettings = `voice:
  enabled: true
  language: fr
  locale: fr-FR
  rate: 0.9
  auto_speak_new_letter: false
gesture:
  enabled: true
  min_trace_points: 15
celebration_seconds: 3
languages:
  fr:
    name: Français
    phrases:
      greeting: "Bonjour ! Appuyez sur espace pour entendre la lettre, ou tracez-la avec la souris !"
      intro: "La lettre est {letter}. Elle se prononce {pronunciation}. {example}."
      success: "Excellent ! Vous avez tracé la lettre {letter} !"
      success_spoken: "Bravo ! Vous avez réussi la lettre {letter} !"
      retry: "Essayez encore de tracer la lettre {letter}. Points tracés: {points}"
      too_short: "Tracé trop court. Essayez de tracer la lettre {letter} plus lentement."
      tracing_on: "Tracez la lettre {letter} avec votre souris ou votre doigt !"
      tracing_off: "Mode tracé désactivé."
    letters:
      A: {pronunciation: "ah", example: "comme Avion"}
      B: {pronunciation: "bé", example: "comme Ballon"}
      C: {pronunciation: "cé", example: "comme Chat"}
      D: {pronunciation: "dé", example: "comme Dino"}
      E: {pronunciation: "euh", example: "comme Éléphant"}
      F: {pronunciation: "èf", example: "comme Fleur"}
      G: {pronunciation: "gé", example: "comme Gâteau"}
      H: {pronunciation: "ash", example: "comme Hélicoptère"}
      I: {pronunciation: "i", example: "comme Igloo"}
      J: {pronunciation: "ji", example: "comme Jouet"}
      K: {pronunciation: "ka", example: "comme Koala"}
      L: {pronunciation: "èl", example: "comme Lapin"}
      M: {pronunciation: "èm", example: "comme Maison"}
      N: {pronunciation: "èn", example: "comme Nounours"}
      O: {pronunciation: "o", example: "comme Oiseau"}
      P: {pronunciation: "pé", example: "comme Pomme"}
      Q: {pronunciation: "ku", example: "comme Quille"}
      R: {pronunciation: "èr", example: "comme Robot"}
      S: {pronunciation: "èss", example: "comme Soleil"}
      T: {pronunciation: "té", example: "comme Train"}
      U: {pronunciation: "u", example: "comme Univers"}
      V: {pronunciation: "vé", example: "comme Voiture"}
      W: {pronunciation: "doobluh vé", example: "comme Wagon"}
      X: {pronunciation: "eeks", example: "comme Xylophone"}
      Y: {pronunciation: "i grèk", example: "comme Yoyo"}
      Z: {pronunciation: "zèd", example: "comme Zèbre"}
  en:
    name: English
    phrases:
      greeting: "Hello! Press space to hear the letter, or trace it with the mouse!"
      intro: "The letter is {letter}. It sounds like {pronunciation}. {example}."
      success: "Excellent! You traced the letter {letter}!"
      success_spoken: "Well done! You got the letter {letter}!"
      retry: "Try tracing the letter {letter} again. Points traced: {points}"
      too_short: "That was too short. Try tracing the letter {letter} more slowly."
      tracing_on: "Trace the letter {letter} with your mouse or finger!"
      tracing_off: "Tracing mode is off."
    letters:
      A: {pronunciation: "ay", example: "as in Airplane"}
      B: {pronunciation: "bee", example: "as in Ball"}
      C: {pronunciation: "see", example: "as in Cat"}
      D: {pronunciation: "dee", example: "as in Dinosaur"}
      E: {pronunciation: "ee", example: "as in Elephant"}
      F: {pronunciation: "ef", example: "as in Flower"}
      G: {pronunciation: "jee", example: "as in Giraffe"}
      H: {pronunciation: "aitch", example: "as in Helicopter"}
      I: {pronunciation: "eye", example: "as in Igloo"}
      J: {pronunciation: "jay", example: "as in Juice"}
      K: {pronunciation: "kay", example: "as in Koala"}
      L: {pronunciation: "el", example: "as in Lion"}
      M: {pronunciation: "em", example: "as in Moon"}
      N: {pronunciation: "en", example: "as in Nest"}
      O: {pronunciation: "oh", example: "as in Octopus"}
      P: {pronunciation: "pee", example: "as in Pear"}
      Q: {pronunciation: "cue", example: "as in Queen"}
      R: {pronunciation: "ar", example: "as in Robot"}
      S: {pronunciation: "ess", example: "as in Sun"}
      T: {pronunciation: "tee", example: "as in Train"}
      U: {pronunciation: "you", example: "as in Umbrella"}
      V: {pronunciation: "vee", example: "as in Van"}
      W: {pronunciation: "double you", example: "as in Wagon"}
      X: {pronunciation: "ex", example: "as in Xylophone"}
      Y: {pronunciation: "why", example: "as in Yoyo"}
      Z: {pronunciation: "zed", example: "as in Zebra"}
`

// DefaultSettingsYAML returns the built-in settings file contents.
func DefaultSettingsYAML() string {
	return defaultSettings
}
