package ruleset

// StarterRuleset is the rule file written by "sweep init". It covers the
// common credential sweeps and demonstrates each search mode.
const StarterRuleset = `# sweep ruleset
#
# Each [section] is one search. The Command template selects the search
# mode: "grep" searches file contents, "find" locates files by name, and
# "find ... -exec cat" locates files and dumps their contents.
#
# Placeholders:
#   KEYWORDS   - replaced with the pipe-joined keyword list
#   EXTENSIONS - replaced with the extension patterns
#   FILES      - replaced with the file name patterns
#
# The Example line is rewritten after every run to show the concrete
# command the section resolved to.

[Passwords In Config Files]
Command: grep -rniE "KEYWORDS" . EXTENSIONS
Example:
Keywords: password, passwd, pwd, secret
Extensions: *.conf, *.cfg, *.ini, *.env, *.yaml, *.yml

[API Keys And Tokens]
Command: grep -rniE "KEYWORDS" .
Example:
Keywords: api[_-]?key, token, bearer

[Private Key Files]
Command: find . -type f EXTENSIONS
Example:
Extensions: *.pem, *.key, *.p12, *.pfx

[Backup Files]
Command: find . -type f EXTENSIONS
Example:
Extensions: *.bak, *.old, *.orig, *~

[SSH Keys]
Command: find . -type f FILES -exec cat {} \;
Example:
Files: id_rsa, id_dsa, id_ecdsa, id_ed25519

[Shell History]
Command: find . -type f FILES
Example:
Files: .bash_history, .zsh_history, .mysql_history, .psql_history
`
